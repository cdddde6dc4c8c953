package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/namhkse/recomending-system/internal/dto"
	"github.com/namhkse/recomending-system/internal/pkg/logger"
	"github.com/namhkse/recomending-system/internal/pkg/serverutils"
	"github.com/namhkse/recomending-system/internal/repository/memory"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/recsys/pipeline"
	"github.com/namhkse/recomending-system/pkg/recsys/rank"
	"github.com/namhkse/recomending-system/pkg/recsys/response"
	"github.com/namhkse/recomending-system/pkg/recsys/state"
	"github.com/namhkse/recomending-system/pkg/store"
)

type IRecommendationService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	Recommend(ctx context.Context, sessionId string, req *dto.RecommendRequest) (*dto.RecommendResponse, error)
}

type recommendationService struct {
	sessionRepo *memory.SessionRepository
	engine      *pipeline.Pipeline
	generator   *response.Generator
	sessionTTL  time.Duration
	sysLogger   logger.ILogger
}

func NewRecommendationService(
	sessionRepo *memory.SessionRepository,
	engine *pipeline.Pipeline,
	generator *response.Generator,
	sessionTTL time.Duration,
	sysLogger logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		sessionRepo: sessionRepo,
		engine:      engine,
		generator:   generator,
		sessionTTL:  sessionTTL,
		sysLogger:   sysLogger,
	}
}

func (s *recommendationService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := state.NewSession(uuid.NewString())
	s.sessionRepo.Save(session)

	token, err := serverutils.IssueSessionToken(session.ID, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.sysLogger.Info("recommendation", "Session created", map[string]interface{}{
		"session_id": session.ID,
	})

	return &dto.CreateSessionResponse{
		Id:    session.ID,
		Token: token,
	}, nil
}

func (s *recommendationService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, recsys.ErrSessionNotFound
	}

	turns := make([]dto.TurnDTO, len(session.Turns))
	for i, t := range session.Turns {
		turns[i] = dto.TurnDTO{
			Utterance:      t.Utterance,
			RecommendedIds: t.RecommendedIds,
			At:             t.At,
		}
	}

	return &dto.GetSessionResponse{
		Id:          session.ID,
		Phase:       session.Phase,
		Constraints: toConstraintsDTO(session.Constraints),
		Turns:       turns,
		CreatedAt:   session.CreatedAt,
	}, nil
}

func (s *recommendationService) DeleteSession(ctx context.Context, sessionId string) error {
	if _, found := s.sessionRepo.Get(sessionId); !found {
		return recsys.ErrSessionNotFound
	}
	s.sessionRepo.Delete(sessionId)
	return nil
}

func (s *recommendationService) Recommend(ctx context.Context, sessionId string, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, recsys.ErrSessionNotFound
	}

	res, err := s.engine.Turn(ctx, session, req.Message)
	if err != nil {
		s.sysLogger.Error("recommendation", "Turn failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	// persist the committed state back under the TTL
	s.sessionRepo.Save(session)

	reply := s.generator.Narrate(ctx, req.Message, res)

	s.sysLogger.Info("recommendation", "Turn completed", map[string]interface{}{
		"session_id": sessionId,
		"results":    len(res.Items),
		"degraded":   res.Degraded,
		"relaxed":    res.Relaxed,
	})

	return &dto.RecommendResponse{
		SessionId:       sessionId,
		Reply:           reply,
		Recommendations: toRecommendationDTOs(res.Items),
		Constraints:     toConstraintsDTO(session.Constraints),
		Degraded:        res.Degraded,
		Relaxed:         res.Relaxed,
		Rejected:        res.Rejected,
		Empty:           res.Empty,
	}, nil
}

func toConstraintsDTO(cs store.ConstraintSet) dto.ConstraintsDTO {
	return dto.ConstraintsDTO{
		Category:      string(cs.Category),
		PriceMin:      cs.PriceMin,
		PriceMax:      cs.PriceMax,
		Brands:        cs.Brands,
		RequiredTags:  cs.RequiredTags,
		PreferredTags: cs.PreferredTags,
	}
}

func toRecommendationDTOs(items []rank.Recommendation) []dto.RecommendationDTO {
	out := make([]dto.RecommendationDTO, len(items))
	for i, r := range items {
		out[i] = dto.RecommendationDTO{
			Product: dto.ProductDTO{
				Id:          r.Product.Id,
				Name:        r.Product.Name,
				Category:    string(r.Product.Category),
				Brand:       r.Product.Brand,
				Price:       r.Product.Price,
				Description: r.Product.Description,
				Specs:       r.Product.Specs,
				Features:    r.Product.Features,
				Tags:        r.Product.Tags,
			},
			SimilarityScore: r.Similarity,
			FilterScore:     r.FilterScore,
			CombinedScore:   r.Combined,
		}
	}
	return out
}
