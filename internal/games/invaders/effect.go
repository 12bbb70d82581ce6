package invaders

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Effect is a temporary rule modifier activated by shooting a power-up.
type Effect int

const (
	EffectDouble Effect = iota
	EffectTriple
	EffectShield
	EffectPierce
	EffectQuickShot
	EffectReflect
	EffectWarp
	EffectMindcontrol
	EffectNumb
	EffectObstacle
	EffectFollower
	EffectXerox
	EffectVendetta
	EffectInvincible
	EffectBlock
	EffectExplode
	EffectClear
	EffectUltra
	EffectYield
	EffectZombify
	EffectAntigravity
	EffectLock
	EffectHijack
	EffectJump
	EffectKamikaze
	EffectGrenade
	effectCount // Sentinel for counting effects
)

// effectInfo is the display and behaviour row of one effect.
type effectInfo struct {
	name        string
	glyph       rune
	color       core.Color
	immediate   bool // Applied on pickup, never stored in the registry
	description string
}

var effectTable = [effectCount]effectInfo{
	EffectDouble:      {"Double", 'D', core.ColorBrightYellow, false, "fire a second shot from the next column"},
	EffectTriple:      {"Triple", 'T', core.ColorBrightYellow, false, "fire two crossing diagonal shots"},
	EffectShield:      {"Shield", 'S', core.ColorBrightBlue, false, "raise a row of shields above the ship"},
	EffectPierce:      {"Pierce", 'P', core.ColorBrightCyan, false, "shots pass through enemies"},
	EffectQuickShot:   {"QuickShot", 'Q', core.ColorBrightYellow, false, "halve the attack cooldown"},
	EffectReflect:     {"Reflect", 'R', core.ColorBrightCyan, false, "shots bounce off the walls"},
	EffectWarp:        {"Warp", '~', core.ColorBrightMagenta, false, "the ship wraps around the side walls"},
	EffectMindcontrol: {"Mindcontrol", 'M', core.ColorBrightGreen, false, "hit enemies fight for you"},
	EffectNumb:        {"Numb", 'N', core.ColorBlue, false, "the first hit freezes an enemy in place"},
	EffectObstacle:    {"Obstacle", 'O', core.ColorOrange, false, "drop a column of obstacles mid-field"},
	EffectFollower:    {"Follower", 'F', core.ColorGreen, false, "an escort tracks the ship and soaks one shot"},
	EffectXerox:       {"Xerox", 'X', core.ColorCyan, false, "a mirrored ally copies your shots"},
	EffectVendetta:    {"Vendetta", 'V', core.ColorBrightRed, false, "enemies that hit the ship are destroyed"},
	EffectInvincible:  {"Invincible", 'I', core.ColorBrightWhite, false, "enemy shots do no damage"},
	EffectBlock:       {"Block", 'B', core.ColorWhite, false, "enemy shots are cancelled every tick"},
	EffectExplode:     {"Explode", 'E', core.ColorRed, true, "destroy enemies around the power-up"},
	EffectClear:       {"Clear", 'C', core.ColorWhite, true, "wipe every enemy shot on the field"},
	EffectUltra:       {"Ultra", 'U', core.ColorMagenta, true, "fire a full column of shots at once"},
	EffectYield:       {"Yield", 'Y', core.ColorYellow, true, "push the formation back for a moment"},
	EffectZombify:     {"Zombify", 'Z', core.ColorGreen, false, "enemy shots turn on their own ranks"},
	EffectAntigravity: {"Antigravity", '@', core.ColorBrightBlue, false, "the formation cannot descend"},
	EffectLock:        {"Lock", 'L', core.ColorGray, false, "the formation cannot move"},
	EffectHijack:      {"Hijack", 'H', core.ColorGray, false, "enemies cannot fire"},
	EffectJump:        {"Jump", 'J', core.ColorBrightMagenta, false, "the ship jumps above the formation and fires down"},
	EffectKamikaze:    {"Kamikaze", 'K', core.ColorBrightRed, false, "the ship rams the formation"},
	EffectGrenade:     {"Grenade", 'G', core.ColorOrange, false, "consumed shots burst into a stray shot"},
}

// AllEffects lists every effect in declaration order.
func AllEffects() []Effect {
	all := make([]Effect, 0, effectCount)
	for e := Effect(0); e < effectCount; e++ {
		all = append(all, e)
	}
	return all
}

// ClassicEffects is the reduced pool of the classic mode.
var ClassicEffects = []Effect{
	EffectDouble,
	EffectTriple,
	EffectShield,
	EffectQuickShot,
	EffectClear,
}

// Valid reports whether e belongs to the enumeration.
func (e Effect) Valid() bool {
	return e >= 0 && e < effectCount
}

// String returns the name of the effect.
func (e Effect) String() string {
	if !e.Valid() {
		return "Unknown"
	}
	return effectTable[e].name
}

// Glyph returns the rune drawn for a power-up carrying e.
func (e Effect) Glyph() rune {
	if !e.Valid() {
		return 0
	}
	return effectTable[e].glyph
}

// Color returns the color tag of a power-up carrying e.
func (e Effect) Color() core.Color {
	if !e.Valid() {
		return core.ColorDefault
	}
	return effectTable[e].color
}

// Immediate reports whether e acts once on pickup instead of for a window.
func (e Effect) Immediate() bool {
	return e.Valid() && effectTable[e].immediate
}

// Description returns a one-line summary for help screens.
func (e Effect) Description() string {
	if !e.Valid() {
		return ""
	}
	return effectTable[e].description
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invaders: cannot marshal effect %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(text []byte) error {
	parsed, ok := ParseEffect(string(text))
	if !ok {
		return fmt.Errorf("invaders: unknown effect %q", text)
	}
	*e = parsed
	return nil
}

// ParseEffect looks an effect up by name, ignoring case.
func ParseEffect(name string) (Effect, bool) {
	for e := Effect(0); e < effectCount; e++ {
		if strings.EqualFold(effectTable[e].name, name) {
			return e, true
		}
	}
	return 0, false
}

// ParseEffects converts config names to effects, skipping unknown names.
func ParseEffects(names []string) []Effect {
	out := make([]Effect, 0, len(names))
	for _, name := range names {
		if e, ok := ParseEffect(name); ok {
			out = append(out, e)
		}
	}
	return out
}
