package compilecmd

import (
	"context"
	"testing"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-courseware/internal/commands"
	"github.com/goliatone/go-courseware/internal/commands/fixtures"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

func TestRegisterCompilerCommandsHandlerOptionsApplied(t *testing.T) {
	service := &stubCompilerService{}
	compileApplied := false
	moduleApplied := false
	lintApplied := false

	_, err := RegisterCompilerCommands(nil, service, nil, enabledGates(),
		WithCompileHandlerOptions(func(h *commands.Handler[CompileCorpusCommand]) {
			compileApplied = true
		}),
		WithCompileModuleHandlerOptions(func(h *commands.Handler[CompileModuleCommand]) {
			moduleApplied = true
		}),
		WithLintHandlerOptions(func(h *commands.Handler[LintCorpusCommand]) {
			lintApplied = true
		}),
	)
	if err != nil {
		t.Fatalf("register compiler commands: %v", err)
	}
	if !compileApplied || !moduleApplied || !lintApplied {
		t.Fatalf("expected all handler options applied, got compile=%v module=%v lint=%v",
			compileApplied, moduleApplied, lintApplied)
	}
}

func TestRegisterCompilerCommandsRegistersHandlers(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	service := &stubCompilerService{}

	set, err := RegisterCompilerCommands(reg, service, nil, enabledGates())
	if err != nil {
		t.Fatalf("register compiler commands: %v", err)
	}
	if set == nil {
		t.Fatal("expected handler set returned")
	}
	if set.Compile == nil || set.CompileModule == nil || set.Lint == nil {
		t.Fatalf("expected all handlers built, got %#v", set)
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected three handlers registered, got %d", len(reg.Handlers))
	}
	if reg.Handlers[0] != set.Compile {
		t.Fatalf("expected compile handler registered first, got %#v", reg.Handlers[0])
	}
	if reg.Handlers[1] != set.CompileModule {
		t.Fatalf("expected compile module handler registered second, got %#v", reg.Handlers[1])
	}
	if reg.Handlers[2] != set.Lint {
		t.Fatalf("expected lint handler registered third, got %#v", reg.Handlers[2])
	}
}

func TestRegisterCompilerCommandsNilRegistrySkipsRegistration(t *testing.T) {
	service := &stubCompilerService{}
	set, err := RegisterCompilerCommands(nil, service, nil, enabledGates())
	if err != nil {
		t.Fatalf("register compiler commands: %v", err)
	}
	if set == nil || set.Compile == nil || set.CompileModule == nil || set.Lint == nil {
		t.Fatalf("expected handlers built when registry nil, got %#v", set)
	}
}

func TestRegisterCompilerCommandsNilServiceError(t *testing.T) {
	if _, err := RegisterCompilerCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when service nil")
	}
}

func TestRegisterCompilerCommandsResultSink(t *testing.T) {
	service := &stubCompilerService{
		result: &interfaces.CompileResult{
			Modules: []interfaces.FlattenedModule{{Slug: "work-history"}},
		},
	}
	var delivered *interfaces.CompileResult

	set, err := RegisterCompilerCommands(nil, service, nil, enabledGates(),
		WithResultSink(func(ctx context.Context, result *interfaces.CompileResult) {
			delivered = result
		}))
	if err != nil {
		t.Fatalf("register compiler commands: %v", err)
	}

	if err := set.Compile.Execute(context.Background(), CompileCorpusCommand{Files: memoryCorpus()}); err != nil {
		t.Fatalf("execute compile corpus: %v", err)
	}
	if delivered != service.result {
		t.Fatal("expected the configured sink to receive the compile result")
	}
}

func TestRegisterLintCronRegistersHandler(t *testing.T) {
	service := &stubCompilerService{}
	handler := NewLintCorpusHandler(service, logging.NoOp(), enabledGates(), nil)
	recorder := fixtures.NewCronRecorder()

	cfg := command.HandlerConfig{Expression: "@daily"}
	msg := LintCorpusCommand{Files: memoryCorpus()}

	if err := RegisterLintCron(recorder.Registrar(), handler, cfg, msg); err != nil {
		t.Fatalf("register lint cron: %v", err)
	}

	if len(recorder.Registrations) != 1 {
		t.Fatalf("expected one cron registration, got %d", len(recorder.Registrations))
	}
	reg := recorder.Registrations[0]
	if reg.Config.Expression != cfg.Expression {
		t.Fatalf("expected cron expression %q, got %q", cfg.Expression, reg.Config.Expression)
	}
	if reg.Run == nil {
		t.Fatal("expected cron run function recorded")
	}
	if err := reg.Run(); err != nil {
		t.Fatalf("executing cron run: %v", err)
	}
	if len(service.lintCalls) != 1 {
		t.Fatalf("expected lint call executed, got %d", len(service.lintCalls))
	}
}

func TestRegisterLintCronNoOpWhenRegistrarNil(t *testing.T) {
	service := &stubCompilerService{}
	handler := NewLintCorpusHandler(service, logging.NoOp(), enabledGates(), nil)
	if err := RegisterLintCron(nil, handler, command.HandlerConfig{}, LintCorpusCommand{Files: memoryCorpus()}); err != nil {
		t.Fatalf("expected nil error when registrar nil, got %v", err)
	}
	if len(service.lintCalls) != 0 {
		t.Fatalf("expected no lint calls when registrar nil, got %d", len(service.lintCalls))
	}
}

func TestRegisterLintCronNoOpWhenHandlerNil(t *testing.T) {
	recorder := fixtures.NewCronRecorder()
	if err := RegisterLintCron(recorder.Registrar(), nil, command.HandlerConfig{}, LintCorpusCommand{Files: memoryCorpus()}); err != nil {
		t.Fatalf("expected nil error when handler nil, got %v", err)
	}
	if len(recorder.Registrations) != 0 {
		t.Fatalf("expected no registrations when handler nil, got %d", len(recorder.Registrations))
	}
}
