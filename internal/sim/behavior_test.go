package sim

import (
	"math"
	"testing"
	"time"
)

func abilityOf(t *testing.T, e *Enemy, k AbilityKind) Ability {
	t.Helper()
	for _, a := range e.Abilities {
		if a.Kind == k {
			return a
		}
	}
	t.Fatalf("%v has no ability %d", e.Kind, k)
	return Ability{}
}

func TestShieldCycle(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := spawn(rs, KindShielded, 100, 100)

	rs.runBehaviors()
	if !e.Invulnerable {
		t.Fatal("shield should be up right after spawning")
	}
	if e.ApplyDamage(50) || e.Health != 10 {
		t.Error("shielded enemy took damage")
	}

	rs.Now = 1199 * time.Millisecond
	rs.drainEvents()
	if !e.Invulnerable {
		t.Error("shield dropped early")
	}
	rs.Now = 1200 * time.Millisecond
	rs.drainEvents()
	if e.Invulnerable {
		t.Fatal("shield should be down after 1.2s")
	}

	rs.Now = 5 * time.Second
	rs.runBehaviors()
	if e.Invulnerable {
		t.Error("shield raised before its cooldown")
	}
	rs.Now = 5200 * time.Millisecond
	rs.runBehaviors()
	if !e.Invulnerable {
		t.Error("shield should be raised again after 5.2s")
	}
}

func TestRemovedEnemyCancelsEvents(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := spawn(rs, KindShielded, 100, 100)
	rs.runBehaviors()
	if rs.Events.Len() == 0 {
		t.Fatal("shield should schedule its end")
	}

	rs.removeEnemy(e)
	if rs.Events.Len() != 0 {
		t.Errorf("pending events = %d after removal", rs.Events.Len())
	}
	rs.removeEnemy(e)
}

func TestLaserDamagesUntilSourceRemoved(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	boss := spawn(rs, KindMothership, p.X, 100)

	rs.perform(boss, abilityOf(t, boss, AbilityLaser))
	if len(rs.Hazards) != 1 || rs.Hazards[0].Kind != HazardLaser {
		t.Fatalf("hazards = %v, expected one laser", rs.Hazards)
	}
	rs.drainEvents()
	if p.Health != 70 {
		t.Fatalf("Health = %v, expected 70 after the first poll", p.Health)
	}

	rs.Now = 16 * time.Millisecond
	rs.drainEvents()
	if p.Health != 40 {
		t.Fatalf("Health = %v, expected 40 after the second poll", p.Health)
	}

	rs.removeEnemy(boss)
	if rs.Hazards[0].Active() {
		t.Error("laser should retire with its boss")
	}
	rs.Now = 32 * time.Millisecond
	rs.drainEvents()
	if p.Health != 40 {
		t.Errorf("Health = %v, laser kept firing after its boss was removed", p.Health)
	}
}

func TestLaserPollsOncePerTick(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	boss := spawn(rs, KindMothership, p.X, 100)
	rs.perform(boss, abilityOf(t, boss, AbilityLaser))

	// A long tick still applies a single poll.
	rs.Now = 100 * time.Millisecond
	rs.drainEvents()
	if p.Health != 70 {
		t.Errorf("Health = %v, expected 70", p.Health)
	}
}

func TestLaserMissesDodgingPlayer(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	boss := spawn(rs, KindMothership, p.X+200, 100)
	rs.perform(boss, abilityOf(t, boss, AbilityLaser))
	rs.drainEvents()
	if p.Health != p.MaxHealth {
		t.Errorf("Health = %v, beam should miss", p.Health)
	}

	rs.Now = 2 * time.Second
	rs.drainEvents()
	if rs.Hazards[0].Active() {
		t.Error("laser should end after its duration")
	}
}

func TestBlackHolePullsPlayer(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	p.X, p.Y = 200, 500
	boss := spawn(rs, KindQuantumShifter, 400, 100)

	rs.perform(boss, abilityOf(t, boss, AbilityBlackHole))
	rs.drainEvents()

	dx, dy := 400-200.0, 135-500.0
	d := math.Hypot(dx, dy)
	if !approx(p.X, 200+dx/d*0.5) || !approx(p.Y, 500+dy/d*0.5) {
		t.Errorf("player at (%v, %v) after one pull", p.X, p.Y)
	}

	// The well follows the boss.
	boss.X = 100
	rs.Now = 16 * time.Millisecond
	before := p.X
	rs.drainEvents()
	if p.X >= before {
		t.Errorf("player X %v should move toward the boss", p.X)
	}
}

func TestRegenCapsAtMax(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	boss := spawn(rs, KindCosmicHydra, 400, 100)
	boss.Health = boss.MaxHealth - 10

	rs.perform(boss, abilityOf(t, boss, AbilityRegen))
	if boss.Health != boss.MaxHealth {
		t.Errorf("Health = %v, expected %v", boss.Health, boss.MaxHealth)
	}
}

func TestHomingMissilesTrackPlayer(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	boss := spawn(rs, KindCosmicHydra, p.X, 100)

	rs.perform(boss, abilityOf(t, boss, AbilityHoming))
	if len(rs.EnemyShots) != 3 {
		t.Fatalf("missiles = %d, expected 3", len(rs.EnemyShots))
	}
	m := rs.EnemyShots[0]
	if !m.Homing || m.Damage != 15 || !approx(m.Angle, math.Pi) {
		t.Errorf("missile = %+v", m)
	}

	p.X += 200
	startX := m.X
	rs.advance(100 * time.Millisecond)
	if m.X <= startX {
		t.Errorf("missile X %v should turn toward the player", m.X)
	}
}

func TestMindControlAndEMP(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	p := rs.Player
	hive := spawn(rs, KindHiveMind, 400, 100)
	titan := spawn(rs, KindTechnoTitan, 200, 100)

	rs.perform(hive, abilityOf(t, hive, AbilityMindControl))
	rs.perform(titan, abilityOf(t, titan, AbilityEMP))
	if !p.MindControlled(rs.Now) || !p.EMPed(rs.Now) {
		t.Fatal("both effects should be active")
	}
	if p.SpecialReady(rs.Now) {
		t.Error("EMP should block the special")
	}

	rs.Now = 5 * time.Second
	if p.MindControlled(rs.Now) {
		t.Error("mind control should last 5s")
	}
	if !p.EMPed(rs.Now) {
		t.Error("EMP should last 10s")
	}
	rs.Now = 10 * time.Second
	if p.EMPed(rs.Now) {
		t.Error("EMP should be over")
	}
}

func TestMinionsWaitForNextTick(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	hive := spawn(rs, KindHiveMind, 400, 100)
	ship := spawn(rs, KindMothership, 200, 100)
	hive.Abilities[abilityIndex(hive, AbilitySwarm)].Last = -time.Hour
	ship.Abilities[abilityIndex(ship, AbilityDrone)].Last = -time.Hour

	rs.runBehaviors()

	speedy := countKind(rs.Enemies, func(e *Enemy) bool { return e.Kind == KindSpeedy })
	basic := countKind(rs.Enemies, func(e *Enemy) bool { return e.Kind == KindBasic })
	if speedy != 3 || basic != 1 {
		t.Fatalf("spawned %d speedy and %d basic, expected 3 and 1", speedy, basic)
	}
	for _, e := range rs.Enemies[2:] {
		if e.lastShot != rs.Now {
			t.Errorf("minion %v ran behaviors in the tick that created it", e.Kind)
		}
	}
	drone := rs.Enemies[len(rs.Enemies)-1]
	if drone.Kind != KindBasic || math.Abs(drone.X-200) > 50 || drone.Y != 190 {
		t.Errorf("drone at (%v, %v)", drone.X, drone.Y)
	}
}

func abilityIndex(e *Enemy, k AbilityKind) int {
	for i, a := range e.Abilities {
		if a.Kind == k {
			return i
		}
	}
	return -1
}

func TestTwinShot(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	boss := spawn(rs, KindMothership, 400, 100)
	basic := spawn(rs, KindBasic, 100, 100)

	rs.enemyFire(boss)
	rs.enemyFire(basic)
	if len(rs.EnemyShots) != 3 {
		t.Fatalf("shots = %d, expected 3", len(rs.EnemyShots))
	}
	l, r, b := rs.EnemyShots[0], rs.EnemyShots[1], rs.EnemyShots[2]
	if l.X != 355 || r.X != 445 || l.Y != 190 {
		t.Errorf("twin shots at (%v, %v) and (%v, %v)", l.X, l.Y, r.X, r.Y)
	}
	if b.X != 100 || b.Y != 142.5 || b.Damage != 3 {
		t.Errorf("basic shot = %+v", b)
	}
}

func TestBehaviorPanicIsolated(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	hydra := spawn(rs, KindCosmicHydra, 400, 100)
	other := spawn(rs, KindBasic, 100, 100)
	hydra.Abilities[abilityIndex(hydra, AbilityHoming)].Last = -time.Hour

	p := rs.Player
	rs.Player = nil // homing dereferences the player
	rs.runBehaviors()
	rs.Player = p

	if hydra.Active() {
		t.Error("failing enemy should be removed")
	}
	if !other.Active() {
		t.Error("other enemies must be unaffected")
	}
}
