package luascript

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Shopify/go-lua"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/partybind/internal/bindings/group"
	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/world"
)

// hookInterval is the number of VM instructions between context checks.
const hookInterval = 1000

const tracerName = "github.com/louisbranch/partybind/internal/script/luascript"

// Config wires an Engine to the world.
type Config struct {
	// Registry resolves players and groups for lookups made by scripts.
	Registry world.Registry
	// Logger receives script lifecycle messages. Nil discards them.
	Logger *log.Logger
	// Verbose logs every group binding dispatch.
	Verbose bool
	// Tracer records one span per binding call. Nil uses the global provider.
	Tracer trace.Tracer
}

// Engine is a Lua state with the world types registered.
type Engine struct {
	state    *lua.State
	registry world.Registry
	logger   *log.Logger
	verbose  bool
	tracer   trace.Tracer
	ctx      context.Context
}

// New creates an engine with the standard libraries and world types loaded.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	e := &Engine{
		state:    lua.NewState(),
		registry: cfg.Registry,
		logger:   logger,
		verbose:  cfg.Verbose,
		tracer:   tracer,
		ctx:      context.Background(),
	}
	lua.OpenLibraries(e.state)
	e.registerTypes()
	e.registerGlobals()
	return e
}

// SetGroup exposes g to scripts as the global name.
func (e *Engine) SetGroup(name string, g world.Group) {
	pushGroup(e.state, g)
	e.state.SetGlobal(name)
}

// SetPlayer exposes p to scripts as the global name.
func (e *Engine) SetPlayer(name string, p world.Player) {
	pushPlayer(e.state, p)
	e.state.SetGlobal(name)
}

// RunString loads and runs source. chunk names the source in error messages.
func (e *Engine) RunString(ctx context.Context, chunk, source string) error {
	if err := lua.LoadBuffer(e.state, source, chunk, ""); err != nil {
		e.state.Pop(1)
		return apperrors.Wrap(apperrors.CodeScriptLoad, "load "+chunk, err)
	}
	return e.run(ctx, chunk)
}

// RunFile loads and runs the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.New(apperrors.CodeScriptLoad, "script path is required")
	}
	if err := lua.LoadFile(e.state, path, ""); err != nil {
		e.state.Pop(1)
		return apperrors.Wrap(apperrors.CodeScriptLoad, "load "+path, err)
	}
	return e.run(ctx, path)
}

// run calls the chunk on top of the stack. The context is checked before the
// chunk starts, before every binding call and every hookInterval
// instructions while Lua code runs.
func (e *Engine) run(ctx context.Context, chunk string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		e.state.Pop(1)
		return apperrors.Wrap(apperrors.CodeScriptRun, "run "+chunk, err)
	}
	e.ctx = ctx
	lua.SetDebugHook(e.state, func(l *lua.State, _ lua.Debug) {
		if err := ctx.Err(); err != nil {
			lua.Errorf(l, "%s", err.Error())
		}
	}, lua.MaskCount, hookInterval)
	defer func() {
		lua.SetDebugHook(e.state, nil, 0, 0)
		e.ctx = context.Background()
	}()

	e.logger.Printf("running %s", chunk)
	if err := e.state.ProtectedCall(0, 0, 0); err != nil {
		e.state.Pop(1)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return apperrors.Wrap(apperrors.CodeScriptRun, "run "+chunk, err)
	}
	e.logger.Printf("finished %s", chunk)
	return nil
}

// dispatch adapts a group binding to a Lua method.
func (e *Engine) dispatch(name string, binding group.Binding) lua.Function {
	return func(l *lua.State) int {
		g := checkGroup(l, 1)
		if err := e.ctx.Err(); err != nil {
			lua.Errorf(l, "%s: %s", name, err.Error())
			return 0
		}

		_, span := e.tracer.Start(e.ctx, "group."+name, trace.WithAttributes(
			attribute.String("group.guid", g.GUID().String()),
		))
		res := binding(group.Context{Args: stackArgs{l: l, base: 1}, Registry: e.registry}, g)
		span.SetAttributes(
			attribute.String("binding.result", res.Kind.String()),
			attribute.Int("binding.values", res.Count()),
		)
		span.End()

		if e.verbose {
			e.logger.Printf("group.%s: %s (%d values)", name, res.Kind, res.Count())
		}
		if res.Kind == group.KindArgumentError {
			raiseArgument(l, 1, res.Err)
			return 0
		}
		for _, v := range res.Values {
			pushValue(l, v)
		}
		return res.Count()
	}
}

func raiseArgument(l *lua.State, base int, err error) {
	lua.ArgumentError(l, group.ArgumentPosition(err)+base, err.Error())
}

func pushValue(l *lua.State, v any) {
	switch v := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(v)
	case uint8:
		l.PushInteger(int(v))
	case uint32:
		l.PushInteger(int(v))
	case world.ObjectGuid:
		pushGuid(l, v)
	case world.Player:
		pushPlayer(l, v)
	case group.Roster:
		l.CreateTable(len(v), 0)
		for i, p := range v {
			pushPlayer(l, p)
			l.RawSetInt(-2, i+1)
		}
	default:
		lua.Errorf(l, "unsupported result type %T", v)
	}
}
