// Package dispatch ties the pipeline together: persist the user turn,
// classify the message, run the chosen agent on a bounded worker pool, then
// persist the agent turn.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ESWARARAO123/agents/internal/agents"
	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/observability"
)

// HealthSentinel is the reserved probe message. Exchanges carrying it are
// never persisted to the conversation log.
const HealthSentinel = "test"

// DefaultWorkerCount bounds concurrent model calls when no size is configured.
const DefaultWorkerCount = 3

// Dispatcher routes one inbound message through classification, a responder
// and the conversation log.
type Dispatcher struct {
	store          memory.Store
	general        *agents.General
	sqlgen         *agents.SQLGenerator
	calculator     *agents.Calculator
	metrics        *observability.Metrics
	defaultSession string

	// Fixed-size worker pool bounding concurrent model calls. Waiters
	// queue without limit; saturation shows up on the busy-worker gauge.
	sem chan struct{}
}

func New(
	store memory.Store,
	general *agents.General,
	sqlgen *agents.SQLGenerator,
	calculator *agents.Calculator,
	metrics *observability.Metrics,
	defaultSession string,
	workerCount int,
) *Dispatcher {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	if strings.TrimSpace(defaultSession) == "" {
		defaultSession = "default"
	}
	return &Dispatcher{
		store:          store,
		general:        general,
		sqlgen:         sqlgen,
		calculator:     calculator,
		metrics:        metrics,
		defaultSession: defaultSession,
		sem:            make(chan struct{}, workerCount),
	}
}

// Handle runs one exchange. Model and validation failures come back as reply
// text; only storage failures and context cancellation surface as errors.
func (d *Dispatcher) Handle(ctx context.Context, sessionID, message string) (agents.Reply, error) {
	if strings.TrimSpace(sessionID) == "" {
		sessionID = d.defaultSession
	}
	persist := !isSentinel(message)
	exchangeStart := time.Now()

	if persist {
		start := time.Now()
		err := d.store.SaveTurn(ctx, memory.TurnRecord{
			SessionID: sessionID,
			Role:      memory.RoleUser,
			Content:   message,
		})
		if err != nil {
			if d.metrics != nil {
				d.metrics.StorageErrors.Inc()
			}
			return agents.Reply{}, err
		}
		if d.metrics != nil {
			d.metrics.ObserveExchangeStage("persist_user", time.Since(start))
		}
	}

	start := time.Now()
	agentID := agents.Classify(message)
	if d.metrics != nil {
		d.metrics.ObserveExchangeStage("classify", time.Since(start))
	}

	reply, err := d.invoke(ctx, agentID, sessionID, message)
	if err != nil {
		return agents.Reply{}, err
	}

	if persist {
		start := time.Now()
		err := d.store.SaveTurn(ctx, memory.TurnRecord{
			SessionID: sessionID,
			Role:      memory.RoleAgent,
			Content:   reply.Text,
		})
		if err != nil {
			if d.metrics != nil {
				d.metrics.StorageErrors.Inc()
			}
			return agents.Reply{}, err
		}
		if d.metrics != nil {
			d.metrics.ObserveExchangeStage("persist_agent", time.Since(start))
		}
	}

	if d.metrics != nil {
		total := time.Since(exchangeStart)
		d.metrics.ObserveExchangeStage("exchange_total", total)
		d.metrics.ExchangeLatency.Observe(float64(total.Milliseconds()))
		d.metrics.Exchanges.WithLabelValues(strconv.Itoa(reply.AgentID), string(reply.Source)).Inc()
		if reply.Source != agents.SourceModel {
			d.metrics.ObserveIndicator("reply_" + string(reply.Source))
		}
	}

	return reply, nil
}

// invoke runs the chosen agent while holding a worker slot, so only a fixed
// number of model calls execute concurrently system-wide.
func (d *Dispatcher) invoke(ctx context.Context, agentID int, sessionID, message string) (agents.Reply, error) {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return agents.Reply{}, ctx.Err()
	}
	if d.metrics != nil {
		d.metrics.BusyWorkers.Inc()
	}
	defer func() {
		if d.metrics != nil {
			d.metrics.BusyWorkers.Dec()
		}
		<-d.sem
	}()

	start := time.Now()
	var reply agents.Reply
	switch agentID {
	case agents.AgentSQL:
		reply = d.sqlgen.Respond(ctx, message)
	case agents.AgentCalculator:
		reply = d.calculator.Respond(ctx, sessionID, message)
	default:
		reply = d.general.Respond(ctx, sessionID, message)
	}
	if d.metrics != nil {
		d.metrics.ObserveExchangeStage("respond", time.Since(start))
	}
	return reply, nil
}

// HealthCheck exercises the general agent with the reserved sentinel message
// without touching the conversation log. A transport-level apology counts as
// unhealthy; anything the model (or mock) answered counts as healthy.
func (d *Dispatcher) HealthCheck(ctx context.Context) error {
	reply, err := d.invoke(ctx, agents.AgentGeneral, d.defaultSession, HealthSentinel)
	if err != nil {
		return err
	}
	if reply.Source == agents.SourceFallback {
		return fmt.Errorf("health probe failed: %s", reply.Text)
	}
	return nil
}

func isSentinel(message string) bool {
	return strings.EqualFold(strings.TrimSpace(message), HealthSentinel)
}
