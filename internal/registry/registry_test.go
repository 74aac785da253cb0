package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                                        { return g.id }
func (g *stubGame) Title() string                                     { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)                          {}
func (g *stubGame) Frame(time.Time, core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                               {}
func (g *stubGame) State() core.GameState                             { return core.GameState{} }
func (g *stubGame) RunID() string                                     { return "" }

var errBroken = errors.New("broken")

func init() {
	Register(GameInfo{ID: "zz_stub", Title: "Stub"}, func(Env) (Game, error) {
		return &stubGame{id: "zz_stub"}, nil
	})
	Register(GameInfo{ID: "zz_broken", Title: "Broken"}, func(Env) (Game, error) {
		return nil, errBroken
	})
}

func TestCreate(t *testing.T) {
	g, err := Create("zz_stub", Env{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	if _, err := Create("zz_broken", Env{}); !errors.Is(err, errBroken) {
		t.Errorf("factory error = %v, expected it wrapped", err)
	}
	if _, err := Create("missing", Env{}); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestListSortedAndExists(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	if !Exists("zz_stub") || Exists("missing") {
		t.Error("Exists() mismatch")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(GameInfo{ID: "zz_stub"}, nil)
}
