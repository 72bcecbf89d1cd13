package scripting

import (
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/observability"
)

// ChooseHook is the Lua global a policy script must define:
//
//	function choose_action(self, foe) return index end
//
// index is a 1-based position in self.abilities, or 0/nil for a basic attack.
const ChooseHook = "choose_action"

// Policy is a combat.EnemyPolicy backed by a Lua script.
//
// Safe for concurrent use; calls are serialised on one LState.
type Policy struct {
	mu     sync.Mutex
	L      *lua.LState
	name   string
	limit  int
	roller *dice.Roller
	logger *zap.Logger
}

var _ combat.EnemyPolicy = (*Policy)(nil)

// NewPolicy compiles source into a sandboxed VM.
//
// Precondition: roller must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a Policy whose script defines choose_action, or an error.
func NewPolicy(name, source string, instLimit int, roller *dice.Roller, logger *zap.Logger) (*Policy, error) {
	if roller == nil {
		return nil, fmt.Errorf("scripting: NewPolicy %q: roller must not be nil", name)
	}
	logger = observability.OrNop(logger)
	p := &Policy{
		L:      NewSandboxedState(),
		name:   name,
		limit:  instLimit,
		roller: roller,
		logger: logger,
	}
	p.RegisterModules(p.L)
	if err := withLimit(p.L, p.limit, func() error { return p.L.DoString(source) }); err != nil {
		p.L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if fn, ok := p.L.GetGlobal(ChooseHook).(*lua.LFunction); !ok || fn == nil {
		p.L.Close()
		return nil, fmt.Errorf("scripting: %q does not define function %s", name, ChooseHook)
	}
	return p, nil
}

// LoadPolicy reads a policy script from path.
func LoadPolicy(path string, instLimit int, roller *dice.Roller, logger *zap.Logger) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return NewPolicy(path, string(data), instLimit, roller, logger)
}

// Close releases the VM.
func (p *Policy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.L != nil {
		p.L.Close()
		p.L = nil
	}
}

// Choose calls choose_action with snapshots of self and foe.
//
// Postcondition: returns an error when the script fails, exceeds its
// instruction budget, or names an ability index out of range.
func (p *Policy) Choose(self, foe *character.Character) (combat.Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.L == nil {
		return combat.Decision{}, fmt.Errorf("scripting: policy %q is closed", p.name)
	}
	L := p.L
	var ret lua.LValue = lua.LNil
	err := withLimit(L, p.limit, func() error {
		if err := L.CallByParam(lua.P{
			Fn:      L.GetGlobal(ChooseHook),
			NRet:    1,
			Protect: true,
		}, snapshot(L, self), snapshot(L, foe)); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		return combat.Decision{}, fmt.Errorf("scripting: %s in %q: %w", ChooseHook, p.name, err)
	}

	var index int
	switch v := ret.(type) {
	case *lua.LNilType:
		index = 0
	case lua.LNumber:
		index = int(v)
		if float64(index) != float64(v) {
			return combat.Decision{}, fmt.Errorf("scripting: %s in %q returned %v, want a whole number", ChooseHook, p.name, float64(v))
		}
	default:
		return combat.Decision{}, fmt.Errorf("scripting: %s in %q returned %s, want number", ChooseHook, p.name, ret.Type())
	}
	if index == 0 {
		return combat.Decision{}, nil
	}
	if index < 0 || index > len(self.Abilities) {
		return combat.Decision{}, fmt.Errorf("scripting: %s in %q returned index %d, have %d abilities", ChooseHook, p.name, index, len(self.Abilities))
	}
	return combat.Decision{Ability: self.Abilities[index-1]}, nil
}

// snapshot builds the read-only Lua view of c.
func snapshot(L *lua.LState, c *character.Character) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := L.NewTable()
	total := c.TotalStats()
	L.SetField(t, "id", lua.LString(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "level", lua.LNumber(c.Level))
	L.SetField(t, "health", lua.LNumber(c.Health))
	L.SetField(t, "max_health", lua.LNumber(total.MaxHealth))
	L.SetField(t, "mana", lua.LNumber(c.Mana))
	L.SetField(t, "max_mana", lua.LNumber(total.MaxMana))
	L.SetField(t, "energy", lua.LNumber(c.Energy))
	L.SetField(t, "max_energy", lua.LNumber(total.MaxEnergy))
	L.SetField(t, "shield", lua.LNumber(c.Shield))
	L.SetField(t, "max_shield", lua.LNumber(total.MaxShield))

	abilities := L.NewTable()
	for _, a := range c.Abilities {
		at := L.NewTable()
		L.SetField(at, "id", lua.LString(a.ID))
		L.SetField(at, "name", lua.LString(a.Name))
		L.SetField(at, "category", lua.LString(a.Category))
		L.SetField(at, "cooldown", lua.LNumber(c.Cooldown(a.ID)))
		L.SetField(at, "ready", lua.LBool(c.Ready(a.ID)))
		L.SetField(at, "affordable", lua.LBool(c.CanPayCost(a.Cost)))
		L.SetField(at, "cost_mana", lua.LNumber(a.Cost.Mana))
		L.SetField(at, "cost_energy", lua.LNumber(a.Cost.Energy))
		abilities.Append(at)
	}
	L.SetField(t, "abilities", abilities)
	return t
}
