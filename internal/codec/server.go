package codec

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/catalog"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/learner"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/scoring"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/selector"
)

// #region server
// Server adapts an Engine to StrategyEngineServer. Requests are validated
// here; the engine itself never rejects out-of-range inputs.
type Server struct {
	engine *engine.Engine
}

// NewServer creates a server backed by e.
func NewServer(e *engine.Engine) *Server {
	return &Server{engine: e}
}

func (s *Server) SelectStrategy(ctx context.Context, req *engine.Request) (*plan.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, toStatus(err)
	}
	p, err := s.engine.SelectAdaptiveStrategy(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return p, nil
}

func (s *Server) AnalyzeTrajectory(_ context.Context, req *TrajectoryRequest) (*TrajectoryResponse, error) {
	return &TrajectoryResponse{
		Trajectory: s.engine.AnalyzeLearningTrajectory(req.LearnerID, req.History),
		Skills:     s.engine.IdentifySkillPatterns(req.History),
	}, nil
}

func (s *Server) MeasureCoherence(_ context.Context, req *CoherenceRequest) (*CoherenceResponse, error) {
	if err := req.Profile.Validate(); err != nil {
		return nil, toStatus(err)
	}
	return &CoherenceResponse{
		Coherence: s.engine.MeasureConsciousnessCoherence(req.Profile, req.Episodes),
	}, nil
}

func (s *Server) AnalyzeAwareness(_ context.Context, req *AwarenessRequest) (*analysis.Awareness, error) {
	a := s.engine.AnalyzeAwarenessLevels(req.Episodes, req.RealTimeData)
	return &a, nil
}

func (s *Server) EvaluateTriggers(_ context.Context, req *TriggerRequest) (*gate.GateDecision, error) {
	if len(req.Triggers) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no adaptation triggers supplied")
	}
	d := s.engine.EvaluateTriggers(&plan.Plan{ID: req.PlanID, Triggers: req.Triggers}, req.Observation)
	return &d, nil
}

// #endregion server

// #region grpc-server
// NewGRPCServer builds a gRPC server with the strategy engine and health
// services registered and a logging interceptor installed.
func NewGRPCServer(srv StrategyEngineServer, log zerolog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor(log)))
	s := grpc.NewServer(opts...)
	RegisterStrategyEngineServer(s, srv)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}

// LoggingInterceptor logs one line per unary call.
func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("elapsed", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}

// #endregion grpc-server

// #region errors
// toStatus maps engine errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, learner.ErrOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, selector.ErrNoStrategies), errors.Is(err, scoring.ErrStageOrder):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// #endregion errors
