package codec

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/analysis"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/gate"
	"github.com/danielpatrickdp/adaptive-state/strategy-engine/internal/plan"
)

// #region client-struct
// Client wraps a gRPC connection to a strategyd server.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// #endregion client-struct

// #region constructor
// NewClient connects to addr. Calls use the JSON codec.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(Name)),
	}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a Client over an existing connection. The caller
// owns cc and must select the JSON codec on it.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection if the client owns one.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region calls
// SelectStrategy requests a strategy plan.
func (c *Client) SelectStrategy(ctx context.Context, req engine.Request) (*plan.Plan, error) {
	out := new(plan.Plan)
	if err := c.cc.Invoke(ctx, methodSelectStrategy, &req, out); err != nil {
		return nil, fmt.Errorf("select strategy: %w", err)
	}
	return out, nil
}

// AnalyzeTrajectory requests the trajectory and skill pattern of a history.
func (c *Client) AnalyzeTrajectory(ctx context.Context, req TrajectoryRequest) (*TrajectoryResponse, error) {
	out := new(TrajectoryResponse)
	if err := c.cc.Invoke(ctx, methodAnalyzeTrajectory, &req, out); err != nil {
		return nil, fmt.Errorf("analyze trajectory: %w", err)
	}
	return out, nil
}

// MeasureCoherence requests the coherence of a profile.
func (c *Client) MeasureCoherence(ctx context.Context, req CoherenceRequest) (float64, error) {
	out := new(CoherenceResponse)
	if err := c.cc.Invoke(ctx, methodMeasureCoherence, &req, out); err != nil {
		return 0, fmt.Errorf("measure coherence: %w", err)
	}
	return out.Coherence, nil
}

// AnalyzeAwareness requests the awareness analysis.
func (c *Client) AnalyzeAwareness(ctx context.Context, req AwarenessRequest) (*analysis.Awareness, error) {
	out := new(analysis.Awareness)
	if err := c.cc.Invoke(ctx, methodAnalyzeAwareness, &req, out); err != nil {
		return nil, fmt.Errorf("analyze awareness: %w", err)
	}
	return out, nil
}

// EvaluateTriggers evaluates triggers against observed signals.
func (c *Client) EvaluateTriggers(ctx context.Context, req TriggerRequest) (*gate.GateDecision, error) {
	out := new(gate.GateDecision)
	if err := c.cc.Invoke(ctx, methodEvaluateTriggers, &req, out); err != nil {
		return nil, fmt.Errorf("evaluate triggers: %w", err)
	}
	return out, nil
}

// #endregion calls
