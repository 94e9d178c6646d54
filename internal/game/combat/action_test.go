package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/game/dice"
	"github.com/cory-johannsen/huntsim/internal/testutil"
)

const (
	hit  = 13
	miss = 1
)

func script(toHit ...int) *testutil.ScriptedRoller {
	return testutil.NewScriptedRoller(toHit...)
}

// play resolves rounds of a with a flat damage attacker, asserting the state
// invariant after every round.
func play(t *testing.T, a combat.Action, r dice.Roller, damage, rounds int) ([]combat.Result, combat.State) {
	t.Helper()
	atk := &combat.Attacker{Name: "test", Damage: dice.FlatFormula{Value: damage}}
	def := makeDefender()
	st := a.NewState()
	out := make([]combat.Result, 0, rounds)
	for round := 1; round <= rounds; round++ {
		out = append(out, a.Resolve(st, atk, def, combat.Turn{
			Round:  round,
			Rounds: rounds,
			Rules:  combat.DefaultRules(),
			Dice:   r,
		}))
		require.NoError(t, st.Check(), "round %d", round)
	}
	return out, st
}

func damages(rs []combat.Result) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Damage
	}
	return out
}

func TestSimple_HitAndMiss(t *testing.T) {
	rs, _ := play(t, combat.Simple{}, script(hit), 10, 1)
	assert.Equal(t, combat.Result{Damage: 10, Hits: 1}, rs[0])

	rs, _ = play(t, combat.Simple{}, script(miss), 10, 1)
	assert.Equal(t, combat.Result{}, rs[0])
}

func TestStacking_BonusCappedStreakNot(t *testing.T) {
	a := combat.Stacking{Bonus: 2, Cap: 2}
	rs, st := play(t, a, script(hit, hit, hit, miss, hit), 10, 5)
	assert.Equal(t, []int{12, 14, 14, 0, 14}, damages(rs))
	assert.Equal(t, 3, st.(*combat.StackingState).Streak.Value)
}

func TestStacking_MissNeverDropsBelowZero(t *testing.T) {
	_, st := play(t, combat.Stacking{Bonus: 1, Cap: 3}, script(miss), 10, 4)
	assert.Zero(t, st.(*combat.StackingState).Streak.Value)
}

func TestFormSwitch_EntersAndLeavesForm(t *testing.T) {
	a := combat.FormSwitch{Threshold: 2, Duration: 2, AttackBonus: 3, DamageBonus: 5}
	r := script(hit)
	rs, st := play(t, a, r, 10, 5)
	assert.Equal(t, []int{10, 10, 15, 15, 10}, damages(rs))
	assert.Equal(t, []int{0, 0, 3, 3, 0}, r.Mods)
	fs := st.(*combat.FormState)
	assert.False(t, fs.Active())
	assert.Equal(t, 1, fs.Accumulated.Value)
}

func TestFormSwitch_MissesDoNotAccumulate(t *testing.T) {
	a := combat.FormSwitch{Threshold: 2, Duration: 2}
	_, st := play(t, a, script(miss), 10, 3)
	assert.Zero(t, st.(*combat.FormState).Accumulated.Value)
}

func TestChargeBlade_DischargesAtThreshold(t *testing.T) {
	a := combat.ChargeBlade{Threshold: 2, Targets: 2, TokensPerHit: 1, MaxTokens: 2, Coefficient: 1}
	rs, st := play(t, a, script(hit), 10, 4)
	assert.Equal(t, combat.Result{Damage: 28, Hits: 2}, rs[2])
	assert.Equal(t, []int{10, 10, 28, 10}, damages(rs))
	assert.Equal(t, 1, st.(*combat.ChargeBladeState).Tokens.Value)
}

func TestChargeBlade_ForcedDischargeOnFinalRound(t *testing.T) {
	a := combat.ChargeBlade{Threshold: 3, Targets: 1, TokensPerHit: 1, MaxTokens: 3, Coefficient: 1}
	rs, st := play(t, a, script(hit), 10, 2)
	assert.Equal(t, combat.Result{Damage: 11, Hits: 1}, rs[1])
	assert.Zero(t, st.(*combat.ChargeBladeState).Tokens.Value)
}

func TestChargeBlade_MissedDischargeWastesTokens(t *testing.T) {
	a := combat.ChargeBlade{Threshold: 2, Targets: 2, TokensPerHit: 1, MaxTokens: 2, Coefficient: 1}
	rs, st := play(t, a, script(hit, hit, miss), 10, 3)
	assert.Equal(t, combat.Result{}, rs[2])
	assert.Zero(t, st.(*combat.ChargeBladeState).Tokens.Value)
}

func TestChargeBlade_DischargeBonusIsQuadratic(t *testing.T) {
	a := combat.ChargeBlade{Coefficient: 2}
	assert.Equal(t, 0, a.DischargeBonus(0))
	assert.Equal(t, 8, a.DischargeBonus(2))
	assert.Equal(t, 18, a.DischargeBonus(3))
}

func TestMultiAttack_EachAttackIndependent(t *testing.T) {
	rs, _ := play(t, combat.MultiAttack{Attacks: 3}, script(hit, miss, hit), 10, 1)
	assert.Equal(t, combat.Result{Damage: 20, Hits: 2}, rs[0])
}

func TestWyvernstake_DetonatesAfterCountdown(t *testing.T) {
	rs, st := play(t, combat.Wyvernstake{Countdown: 3}, script(hit), 5, 4)
	assert.Equal(t, []int{5, 5, 20, 5}, damages(rs))
	ss := st.(*combat.StakeState)
	assert.True(t, ss.Inserted)
	assert.Equal(t, 5, ss.Accumulated)
}

func TestWyvernstake_MissBeforeInsertion(t *testing.T) {
	rs, st := play(t, combat.Wyvernstake{Countdown: 2}, script(miss, hit, miss), 5, 3)
	assert.Equal(t, []int{0, 5, 5}, damages(rs))
	assert.False(t, st.(*combat.StakeState).Inserted)
}

func TestInsectGlaive_TieredBonuses(t *testing.T) {
	a := combat.InsectGlaive{AttackBonus: 2, DamageBonus: 3, MaxTokens: 3}
	r := script(hit)
	rs, st := play(t, a, r, 10, 5)
	assert.Equal(t, []int{0, 2, 2, 2, 2}, r.Mods)
	assert.Equal(t, []int{10, 10, 13, 13, 13}, damages(rs))
	assert.Equal(t, 3, st.(*combat.GlaiveState).Tokens.Value)
}

func TestInsectGlaive_MissLosesExtract(t *testing.T) {
	a := combat.InsectGlaive{AttackBonus: 2, DamageBonus: 3, MaxTokens: 3}
	_, st := play(t, a, script(hit, hit, miss), 10, 3)
	assert.Equal(t, 1, st.(*combat.GlaiveState).Tokens.Value)
}

func TestAoE_DamageLandsOnEveryTarget(t *testing.T) {
	rs, _ := play(t, combat.AoE{Targets: 3}, script(hit), 10, 1)
	assert.Equal(t, combat.Result{Damage: 30, Hits: 3}, rs[0])
	rs, _ = play(t, combat.AoE{Targets: 3}, script(miss), 10, 1)
	assert.Equal(t, combat.Result{}, rs[0])
}

func TestGreatHammer_VulnerabilityWindow(t *testing.T) {
	a := combat.GreatHammer{StreakThreshold: 2, Duration: 2, AttackDie: 6, DamageDie: 6}
	r := script(hit)
	r.Other[6] = 4
	rs, st := play(t, a, r, 10, 5)
	assert.Equal(t, []int{0, 0, 4, 4, 0}, r.Mods)
	assert.Equal(t, []int{10, 10, 14, 14, 10}, damages(rs))
	hs := st.(*combat.HammerState)
	assert.False(t, hs.Vulnerable.Active())
	assert.Equal(t, 1, hs.Streak.Value)
}

func TestLance_FollowUp(t *testing.T) {
	a := combat.Lance{FollowUpPercent: 50}

	r := script(hit)
	r.Other[100] = 50
	rs, _ := play(t, a, r, 10, 1)
	assert.Equal(t, combat.Result{Damage: 20, Hits: 2}, rs[0])

	r = script(hit)
	r.Other[100] = 51
	rs, _ = play(t, a, r, 10, 1)
	assert.Equal(t, combat.Result{Damage: 10, Hits: 1}, rs[0])
}

func TestLance_FollowUpIgnoresFirstMiss(t *testing.T) {
	r := script(miss, hit)
	r.Other[100] = 1
	rs, _ := play(t, combat.Lance{FollowUpPercent: 100}, r, 10, 1)
	assert.Equal(t, combat.Result{Damage: 10, Hits: 1}, rs[0])
}

func TestLightBowgun_RerollsOnce(t *testing.T) {
	r := script(miss, hit)
	rs, _ := play(t, combat.LightBowgun{}, r, 10, 1)
	assert.Equal(t, combat.Result{Damage: 10, Hits: 1}, rs[0])
	assert.Len(t, r.Mods, 2)

	r = script(miss, miss, hit)
	rs, _ = play(t, combat.LightBowgun{}, r, 10, 1)
	assert.Equal(t, combat.Result{}, rs[0])
	assert.Len(t, r.Mods, 2)

	r = script(hit)
	play(t, combat.LightBowgun{}, r, 10, 1)
	assert.Len(t, r.Mods, 1, "a hit is never re-rolled")
}

func TestHeavyBowgun_StacksScaleBothRolls(t *testing.T) {
	a := combat.HeavyBowgun{Stacks: 2, AttackPerStack: 1, DamagePerStack: 2}
	r := script(hit)
	rs, _ := play(t, a, r, 10, 1)
	assert.Equal(t, []int{2}, r.Mods)
	assert.Equal(t, combat.Result{Damage: 14, Hits: 1}, rs[0])
}

func TestStatelessActions_ShareState(t *testing.T) {
	for _, a := range []combat.Action{combat.Simple{}, combat.MultiAttack{Attacks: 2}, combat.AoE{Targets: 2}, combat.Lance{}, combat.LightBowgun{}, combat.HeavyBowgun{}} {
		assert.Equal(t, combat.Stateless{}, a.NewState(), string(a.Variant()))
	}
}
