package codec

import (
	"context"

	"google.golang.org/grpc"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region service-desc
// ServiceName is the fully qualified gRPC service name.
const ServiceName = "strategyengine.v1.StrategyEngine"

const (
	methodSelectStrategy    = "/" + ServiceName + "/SelectStrategy"
	methodAnalyzeTrajectory = "/" + ServiceName + "/AnalyzeTrajectory"
	methodMeasureCoherence  = "/" + ServiceName + "/MeasureCoherence"
	methodAnalyzeAwareness  = "/" + ServiceName + "/AnalyzeAwareness"
	methodEvaluateTriggers  = "/" + ServiceName + "/EvaluateTriggers"
)

// StrategyEngineServer is the server API for the strategy engine service.
type StrategyEngineServer interface {
	SelectStrategy(context.Context, *engine.Request) (*plan.Plan, error)
	AnalyzeTrajectory(context.Context, *TrajectoryRequest) (*TrajectoryResponse, error)
	MeasureCoherence(context.Context, *CoherenceRequest) (*CoherenceResponse, error)
	AnalyzeAwareness(context.Context, *AwarenessRequest) (*analysis.Awareness, error)
	EvaluateTriggers(context.Context, *TriggerRequest) (*gate.GateDecision, error)
}

// ServiceDesc describes the strategy engine service. Messages are plain Go
// records carried by the JSON codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StrategyEngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SelectStrategy", Handler: selectStrategyHandler},
		{MethodName: "AnalyzeTrajectory", Handler: analyzeTrajectoryHandler},
		{MethodName: "MeasureCoherence", Handler: measureCoherenceHandler},
		{MethodName: "AnalyzeAwareness", Handler: analyzeAwarenessHandler},
		{MethodName: "EvaluateTriggers", Handler: evaluateTriggersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "strategyengine/v1/strategy_engine.proto",
}

// RegisterStrategyEngineServer registers srv on s.
func RegisterStrategyEngineServer(s grpc.ServiceRegistrar, srv StrategyEngineServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// #endregion service-desc

// #region handlers
// unary decodes a request of type Req and dispatches it through the optional
// interceptor.
func unary[Req any, Resp any](
	method string,
	call func(StrategyEngineServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StrategyEngineServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StrategyEngineServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	selectStrategyHandler    = unary(methodSelectStrategy, StrategyEngineServer.SelectStrategy)
	analyzeTrajectoryHandler = unary(methodAnalyzeTrajectory, StrategyEngineServer.AnalyzeTrajectory)
	measureCoherenceHandler  = unary(methodMeasureCoherence, StrategyEngineServer.MeasureCoherence)
	analyzeAwarenessHandler  = unary(methodAnalyzeAwareness, StrategyEngineServer.AnalyzeAwareness)
	evaluateTriggersHandler  = unary(methodEvaluateTriggers, StrategyEngineServer.EvaluateTriggers)
)

// #endregion handlers
