package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"bodyshop-work-order/app/controller"
	"bodyshop-work-order/app/router"
	"bodyshop-work-order/config"
	"bodyshop-work-order/db"
	"bodyshop-work-order/repository"
	"bodyshop-work-order/service"
	"bodyshop-work-order/workorder"
)

// App is the wired application
type App struct {
	Handler  http.Handler
	Sessions *repository.SessionRepository
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg config.Config) (*App, error) {
	// Initialize the optional issued work order archive
	if _, err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ids, err := workorder.NewSnowflakeGenerator(cfg.NodeID)
	if err != nil {
		return nil, err
	}

	// Initialize Drive service when configured
	var drive service.DriveServiceInterface
	if cfg.DriveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.DriveCredentials, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		drive = driveService
	} else {
		log.Printf("ℹ️  GOOGLE_APPLICATION_CREDENTIALS or DRIVE_FOLDER_ID not set, Drive export disabled")
	}

	// Initialize repositories
	sessions := repository.NewSessionRepository(ids)
	archive := repository.NewArchiveRepository()

	// Initialize services
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	enrichment := service.NewEnrichmentService(
		sessions,
		service.NewVinDecoder(cfg.VinDecodeURL, httpClient),
		service.NewDocumentAnalyzer(cfg.AnalysisBaseURL, httpClient),
	)

	html := service.NewHTMLRenderer(cfg.ShopName)
	chrome := service.NewChromeRunner(cfg.ChromePath, cfg.RenderTimeout)
	exports := service.NewExportService(archive, drive,
		html,
		service.NewPDFRenderer(html, chrome),
		service.NewXLSXRenderer(cfg.ShopName),
		service.NewPreviewRenderer(html, chrome, 0),
	)

	// Create controllers
	controllers := &router.Controllers{
		WorkOrder:  controller.NewWorkOrderController(sessions),
		Enrichment: controller.NewEnrichmentController(enrichment),
		Print:      controller.NewPrintController(sessions, exports),
		Estimate:   controller.NewEstimateController(),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return &App{Handler: mux, Sessions: sessions}, nil
}
