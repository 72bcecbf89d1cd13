package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine table into L:
//
//	engine.random()  -> number in [0, 1) drawn from the game's dice
//	engine.log(msg)  -> writes msg to the game log at debug level
//
// Precondition: L must be from NewSandboxedState.
func (p *Policy) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(p.roller.Float64("script.random")))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		p.logger.Debug("script log", zap.String("policy", p.name), zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetGlobal("engine", engine)
}
