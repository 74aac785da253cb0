package shooter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

// hudRows is the number of screen rows above the play area.
const hudRows = 2

// Visual characters
const (
	shipNose     = '▲'
	shipBody     = '▓'
	playerShot   = '|'
	enemyShot    = '!'
	homingShot   = '*'
	weakPoint    = '◆'
	laserChar    = '┃'
	blackHole    = '@'
	blackHoleRim = '░'
)

var _ sim.Renderer = (*Renderer)(nil)

// Renderer draws the world scaled onto the terminal screen with a two-row
// HUD on top.
type Renderer struct {
	// Stats, when set, adds frame diagnostics to the HUD.
	Stats *sim.FrameStats
}

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(rs *sim.RunState, dst *core.Screen) viewport {
	w := rs.Config().World
	playH := max(dst.Height()-hudRows, 1)
	return viewport{
		sx:  float64(dst.Width()) / w.Width,
		sy:  float64(playH) / w.Height,
		top: hudRows,
	}
}

// cell returns the screen cell of a world point.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), v.top + int(math.Floor(y*v.sy))
}

// rect returns the screen cells covered by a world box, at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.Left() * v.sx))
	y0 := int(math.Floor(b.Top() * v.sy))
	x1 := max(int(math.Ceil(b.Right()*v.sx)), x0+1)
	y1 := max(int(math.Ceil(b.Bottom()*v.sy)), y0+1)
	return core.NewRect(x0, v.top+y0, x1-x0, y1-y0)
}

// Render implements sim.Renderer.
func (r *Renderer) Render(rs *sim.RunState, dst *core.Screen) {
	dst.Clear()
	v := newViewport(rs, dst)

	// Keep the world from drawing over the HUD.
	clip := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)

	for _, h := range rs.Hazards {
		if h.Active() {
			drawHazard(dst, v, clip, h)
		}
	}
	for _, p := range rs.Pickups {
		if p.Active() {
			x, y := v.cell(p.X, p.Y)
			put(dst, clip, x, y, p.Kind.Glyph(), core.ColorBrightGreen)
		}
	}
	for _, e := range rs.Enemies {
		if e.Active() {
			drawEnemy(dst, v, clip, e)
		}
	}
	for _, s := range rs.Projectiles {
		if s.Active() {
			x, y := v.cell(s.X, s.Y)
			put(dst, clip, x, y, playerShot, core.ColorBrightYellow)
		}
	}
	for _, s := range rs.EnemyShots {
		if !s.Active() {
			continue
		}
		x, y := v.cell(s.X, s.Y)
		if s.Homing {
			put(dst, clip, x, y, homingShot, core.ColorOrange)
		} else {
			put(dst, clip, x, y, enemyShot, core.ColorRed)
		}
	}
	if p := rs.Player; p != nil && !p.Dead() {
		drawPlayer(dst, v, clip, rs, p)
	}

	r.drawHUD(dst, rs)
}

func put(dst *core.Screen, clip core.Rect, x, y int, ch rune, c core.Color) {
	if clip.Contains(x, y) {
		dst.SetColor(x, y, ch, c)
	}
}

func fill(dst *core.Screen, clip core.Rect, r core.Rect, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			put(dst, clip, x, y, ch, c)
		}
	}
}

func drawPlayer(dst *core.Screen, v viewport, clip core.Rect, rs *sim.RunState, p *sim.Player) {
	color := core.ColorBrightCyan
	switch {
	case p.Invulnerable:
		color = core.ColorBrightWhite
	case p.MindControlled(rs.Now):
		color = core.ColorBrightMagenta
	case p.ShieldCharges > 0:
		color = core.ColorBrightBlue
	}
	r := v.rect(p.Bounds())
	fill(dst, clip, r, shipBody, color)
	x, _ := v.cell(p.X, p.Y)
	put(dst, clip, x, r.Y, shipNose, color)
}

func enemyStyle(k sim.Kind) (rune, core.Color) {
	switch k {
	case sim.KindBasic:
		return 'V', core.ColorRed
	case sim.KindSpeedy:
		return 'v', core.ColorYellow
	case sim.KindArmored:
		return '#', core.ColorGray
	case sim.KindSplitting:
		return 'o', core.ColorGreen
	case sim.KindShielded:
		return 'O', core.ColorBlue
	default:
		return '█', core.ColorMagenta
	}
}

func drawEnemy(dst *core.Screen, v viewport, clip core.Rect, e *sim.Enemy) {
	ch, color := enemyStyle(e.Kind)
	if e.Invulnerable {
		color = core.ColorBrightBlue
	}
	r := v.rect(e.Bounds())
	fill(dst, clip, r, ch, color)

	if e.Kind.IsBoss() {
		label := e.Name
		if n := len([]rune(label)); n <= r.W {
			x := r.X + (r.W-n)/2
			for i, c := range label {
				put(dst, clip, x+i, r.Y+r.H/2, c, core.ColorBrightWhite)
			}
		}
	}
	for i, wp := range e.WeakPoints {
		if wp.Destroyed {
			continue
		}
		fill(dst, clip, v.rect(e.WeakPointBounds(i)), weakPoint, core.ColorBrightRed)
	}
}

func drawHazard(dst *core.Screen, v viewport, clip core.Rect, h *sim.Hazard) {
	r := v.rect(h.Bounds())
	switch h.Kind {
	case sim.HazardLaser:
		fill(dst, clip, r, laserChar, core.ColorBrightRed)
	case sim.HazardBlackHole:
		fill(dst, clip, r, blackHoleRim, core.ColorMagenta)
		x, y := v.cell(h.X, h.Y)
		put(dst, clip, x, y, blackHole, core.ColorBrightMagenta)
	}
}

// drawHUD writes the status rows.
func (r *Renderer) drawHUD(dst *core.Screen, rs *sim.RunState) {
	p := rs.Player
	if p == nil {
		return
	}

	status := fmt.Sprintf(" Score %d  %s  HP %s %d/%d",
		rs.Score, clock(rs.Now), bar(10, p.Health/p.MaxHealth),
		int(math.Max(p.Health, 0)), int(p.MaxHealth))
	if p.ShieldCharges > 0 {
		status += fmt.Sprintf("  Shield x%d", p.ShieldCharges)
	}
	dst.DrawTextColor(0, 0, status, core.ColorBrightWhite)

	special := specialStatus(rs, p)
	dst.DrawTextColor(dst.Width()-len([]rune(special))-1, 0, special, core.ColorBrightCyan)

	var parts []string
	for _, e := range p.Effects {
		if !e.Expired(rs.Now) {
			parts = append(parts, fmt.Sprintf("%s %ds", e.Kind.Label(), int(math.Ceil(e.Remaining(rs.Now).Seconds()))))
		}
	}
	if p.MindControlled(rs.Now) {
		parts = append(parts, "MIND CONTROL")
	}
	dst.DrawTextColor(1, 1, strings.Join(parts, "  "), core.ColorBrightGreen)

	right := ""
	if boss := firstBoss(rs); boss != nil {
		right = fmt.Sprintf("%s %s", boss.Name, bar(12, boss.Health/boss.MaxHealth))
	}
	if r.Stats != nil {
		avg, low := r.Stats.Average()
		right = strings.TrimSpace(fmt.Sprintf("%s  FPS %d (avg %.0f, min %d) stalls %d",
			right, r.Stats.FPS(), avg, low, r.Stats.Stalls()))
	}
	if right != "" {
		dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 1, right, core.ColorOrange)
	}
}

func specialStatus(rs *sim.RunState, p *sim.Player) string {
	name := p.Special.String()
	switch {
	case p.EMPed(rs.Now):
		return name + " EMP"
	case p.SpecialActive:
		return name + " ACTIVE"
	case p.SpecialReady(rs.Now):
		return name + " READY"
	default:
		return fmt.Sprintf("%s %ds", name, int(math.Ceil(p.SpecialRemaining(rs.Now).Seconds())))
	}
}

func firstBoss(rs *sim.RunState) *sim.Enemy {
	for _, e := range rs.Enemies {
		if e.Active() && e.Kind.IsBoss() {
			return e
		}
	}
	return nil
}

// bar renders a fraction as a fixed-width gauge.
func bar(width int, frac float64) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	n := int(math.Round(core.ClampF(frac, 0, 1) * float64(width)))
	return "[" + strings.Repeat("█", n) + strings.Repeat("·", width-n) + "]"
}

// clock formats a run time as mm:ss.
func clock(d time.Duration) string {
	s := int(max(d, 0) / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
