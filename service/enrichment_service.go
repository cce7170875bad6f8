package service

import (
	"context"
	"errors"
	"io"
	"log"

	"bodyshop-work-order/repository"
	"bodyshop-work-order/workorder"
)

// EnrichmentService runs external lookups for a session and applies their
// results through the session repository. Lookups run outside the session
// lock; responses that arrive after their input was replaced are dropped.
type EnrichmentService struct {
	sessions repository.SessionRepositoryInterface
	vin      VinDecoderInterface
	analyzer DocumentAnalyzerInterface
}

// Ensure EnrichmentService implements EnrichmentServiceInterface
var _ EnrichmentServiceInterface = (*EnrichmentService)(nil)

// NewEnrichmentService creates a new EnrichmentService
func NewEnrichmentService(sessions repository.SessionRepositoryInterface, vin VinDecoderInterface, analyzer DocumentAnalyzerInterface) *EnrichmentService {
	return &EnrichmentService{sessions: sessions, vin: vin, analyzer: analyzer}
}

// SetVIN stores the VIN and, when it is complete, decodes it
func (s *EnrichmentService) SetVIN(ctx context.Context, sessionID, vin string) (repository.Session, error) {
	var token uint64
	session, err := s.sessions.Update(ctx, sessionID, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		next := st.WithVIN(vin)
		token = next.VinToken()
		return next, nil
	})
	if err != nil {
		return repository.Session{}, err
	}

	if len(session.State.Vehicle.VIN) != VinLength {
		return session, nil
	}
	return s.decode(ctx, sessionID, session.State.Vehicle.VIN, token)
}

func (s *EnrichmentService) decode(ctx context.Context, sessionID, vin string, token uint64) (repository.Session, error) {
	decoded, decodeErr := s.vin.Decode(ctx, vin)
	if decodeErr != nil {
		log.Printf("❌ VIN decode failed for session %s: %v", sessionID, decodeErr)
	}

	session, err := s.sessions.Update(ctx, sessionID, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		if decodeErr != nil {
			return st.ApplyVinFailure(token)
		}
		return st.ApplyVinDecode(token, decoded)
	})
	if errors.Is(err, workorder.ErrStaleResponse) {
		log.Printf("⚠️  Dropping stale VIN decode for session %s (vin=%s)", sessionID, vin)
		return s.sessions.Get(ctx, sessionID)
	}
	return session, err
}

// AnalyzeDocument uploads an estimate and merges the result into the session.
// An analysis failure is recorded on the upload status and is not returned as an error.
func (s *EnrichmentService) AnalyzeDocument(ctx context.Context, sessionID, filename string, file io.Reader) (repository.Session, error) {
	var token uint64
	before, err := s.sessions.Update(ctx, sessionID, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		next, t := st.BeginUpload()
		token = t
		return next, nil
	})
	if err != nil {
		return repository.Session{}, err
	}

	result, analyzeErr := s.analyzer.Analyze(ctx, filename, file)
	if analyzeErr != nil {
		log.Printf("❌ Document analysis failed for session %s: %v", sessionID, analyzeErr)
	}

	var vinToken uint64
	session, err := s.sessions.Update(ctx, sessionID, func(st workorder.State, ids workorder.IDGenerator) (workorder.State, error) {
		if analyzeErr != nil {
			return st.ApplyUploadFailure(token)
		}
		next, err := st.ApplyAnalysis(ids, token, result)
		vinToken = next.VinToken()
		return next, err
	})
	if errors.Is(err, workorder.ErrStaleResponse) {
		log.Printf("⚠️  Dropping stale analysis for session %s (%s)", sessionID, filename)
		return s.sessions.Get(ctx, sessionID)
	}
	if err != nil {
		return repository.Session{}, err
	}

	// An imported VIN goes through the same decode path as a typed one
	vin := session.State.Vehicle.VIN
	if analyzeErr == nil && vin != before.State.Vehicle.VIN && len(vin) == VinLength {
		return s.decode(ctx, sessionID, vin, vinToken)
	}
	return session, nil
}

