package shooter

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

func TestRenderPlayerAndHUD(t *testing.T) {
	g := newTestGame(t, "speedster")
	screen := core.NewScreen(80, 26)

	g.Render(screen)

	// Ship at (400, 550), 100x100 world units, on an 80x24 play area.
	if got := screen.Get(40, 22); got != shipNose {
		t.Errorf("nose cell = %q, expected %q", got, shipNose)
	}
	if got := screen.Get(40, 24); got != shipBody {
		t.Errorf("body cell = %q, expected %q", got, shipBody)
	}
	if row := screen.Row(0); !strings.Contains(row, "Score 0") || !strings.Contains(row, "00:00") {
		t.Errorf("HUD row = %q", row)
	}
	if row := screen.Row(0); !strings.Contains(row, "Dodge Roll READY") {
		t.Errorf("HUD row = %q, expected special status", row)
	}
}

func TestRenderKeepsWorldOutOfHUD(t *testing.T) {
	g := newTestGame(t, "tank")
	rs := g.Run()
	rs.EnemyShots = append(rs.EnemyShots, &sim.Projectile{Owner: sim.OwnerEnemy, X: 780, Y: 1, W: 5, H: 15})
	rs.Projectiles = append(rs.Projectiles, &sim.Projectile{Owner: sim.OwnerPlayer, X: 100, Y: 300, W: 5, H: 15})

	screen := core.NewScreen(80, 26)
	g.Render(screen)

	if got := screen.Get(78, hudRows); got != enemyShot {
		t.Errorf("enemy shot cell = %q", got)
	}
	if got := screen.Get(10, hudRows+12); got != playerShot {
		t.Errorf("player shot cell = %q", got)
	}
	if strings.ContainsRune(screen.Row(0)+screen.Row(1), enemyShot) {
		t.Error("world drawn into the HUD")
	}
}

func TestRenderPanels(t *testing.T) {
	g := newTestGame(t, "all_rounder")
	screen := core.NewScreen(80, 26)

	g.Run().TogglePause()
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause panel missing")
	}

	g.Run().TogglePause()
	rs := g.Run()
	rs.EnemyShots = append(rs.EnemyShots, &sim.Projectile{
		Owner: sim.OwnerEnemy, X: rs.Player.X, Y: rs.Player.Y, W: 5, H: 15, Damage: 1000,
	})
	g.Frame(time.Unix(0, 0), core.NewInputFrame())
	g.Frame(time.Unix(0, 0).Add(16*time.Millisecond), core.NewInputFrame())
	g.Render(screen)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over panel missing")
	}
}

func TestRenderDebugStats(t *testing.T) {
	g := newTestGame(t, "tank")
	g.renderer.Stats = g.sched.Stats()
	screen := core.NewScreen(100, 26)
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "FPS") {
		t.Errorf("debug row = %q", screen.Row(1))
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{1, "[████]"},
		{0.5, "[██··]"},
		{-1, "[····]"},
		{2, "[████]"},
	}
	for _, tc := range tests {
		if got := bar(4, tc.frac); got != tc.want {
			t.Errorf("bar(4, %v) = %q, expected %q", tc.frac, got, tc.want)
		}
	}
}
