package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/adventcore/types"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerActionHelpers(L)

	L.SetGlobal("CARRIED", lua.LString(types.LocationCarried))
	L.SetGlobal("DESTROYED", lua.LString(types.LocationDestroyed))
}

// curried returns a constructor used as `Kind "id" { ... }`: the first call
// takes the id, the returned function takes the definition table.
func curried(L *lua.LState, add func(rawDef)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Room", curried(L, func(r rawDef) { coll.rooms = append(coll.rooms, r) }))
	L.SetGlobal("Item", curried(L, func(r rawDef) { coll.items = append(coll.items, r) }))
	L.SetGlobal("Event", curried(L, func(r rawDef) { coll.events = append(coll.events, r) }))
	L.SetGlobal("Timer", curried(L, func(r rawDef) { coll.timers = append(coll.timers, r) }))

	// Vocabulary { verbs = {...}, nouns = {...}, directions = {...} }
	// May be called more than once; later tables win on conflicts.
	L.SetGlobal("Vocabulary", L.NewFunction(func(L *lua.LState) int {
		coll.vocab = append(coll.vocab, L.CheckTable(1))
		return 0
	}))

	// Exit("north", "bridge", { locked = true, lock_flag = "...", lock_message = "..." })
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("direction", lua.LString(L.CheckString(1)))
		tbl.RawSetString("destination", lua.LString(L.CheckString(2)))
		if opts := L.OptTable(3, nil); opts != nil {
			opts.ForEach(func(k, v lua.LValue) {
				if ks, ok := k.(lua.LString); ok {
					tbl.RawSetString(string(ks), v)
				}
			})
		}
		L.Push(tbl)
		return 1
	}))
}

// descriptor builds the table every condition and action helper returns.
func descriptor(L *lua.LState, kind, target string, value lua.LValue) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(kind))
	if target != "" {
		tbl.RawSetString("target", lua.LString(target))
	}
	if value != nil && value != lua.LNil {
		tbl.RawSetString("value", value)
	}
	return tbl
}

func registerConditionHelpers(L *lua.LState) {
	// One-argument conditions: Carrying("key"), FlagSet("door_open"), ...
	targetOnly := map[string]types.ConditionKind{
		"Carrying":    types.CondCarrying,
		"NotCarrying": types.CondNotCarrying,
		"Here":        types.CondHere,
		"NotHere":     types.CondNotHere,
		"InRoom":      types.CondInRoom,
		"NotInRoom":   types.CondNotInRoom,
		"FlagSet":     types.CondFlagSet,
		"FlagUnset":   types.CondFlagUnset,
		"Exists":      types.CondExists,
	}
	for name, kind := range targetOnly {
		kind := kind
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(descriptor(L, string(kind), L.CheckString(1), nil))
			return 1
		}))
	}

	// Counter comparisons: CounterGE("power", 3).
	counters := map[string]types.ConditionKind{
		"CounterGE": types.CondCounterGE,
		"CounterLE": types.CondCounterLE,
		"CounterEQ": types.CondCounterEQ,
	}
	for name, kind := range counters {
		kind := kind
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(descriptor(L, string(kind), L.CheckString(1), L.CheckNumber(2)))
			return 1
		}))
	}
}

func registerActionHelpers(L *lua.LState) {
	// Message("text")
	L.SetGlobal("Message", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActMessage), "", lua.LString(L.CheckString(1))))
		return 1
	}))

	// MoveItem("item", "room" | CARRIED | DESTROYED)
	L.SetGlobal("MoveItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActMoveItem), L.CheckString(1), lua.LString(L.CheckString(2))))
		return 1
	}))

	// SwapItem("old", "new")
	L.SetGlobal("SwapItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActSwapItem), L.CheckString(1), lua.LString(L.CheckString(2))))
		return 1
	}))

	// Single-target actions: SetFlag("f"), Teleport("room"), ...
	targetOnly := map[string]types.ActionKind{
		"SetFlag":      types.ActSetFlag,
		"ClearFlag":    types.ActClearFlag,
		"Teleport":     types.ActTeleport,
		"DestroyItem":  types.ActDestroyItem,
		"UnlockExit":   types.ActUnlockExit,
		"EnableTimer":  types.ActEnableTimer,
		"DisableTimer": types.ActDisableTimer,
	}
	for name, kind := range targetOnly {
		kind := kind
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(descriptor(L, string(kind), L.CheckString(1), nil))
			return 1
		}))
	}

	// Counter actions with an optional amount: IncCounter("c"), SetCounter("c", 5).
	counters := map[string]types.ActionKind{
		"IncCounter": types.ActIncCounter,
		"DecCounter": types.ActDecCounter,
		"SetCounter": types.ActSetCounter,
	}
	for name, kind := range counters {
		kind := kind
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(descriptor(L, string(kind), L.CheckString(1), L.Get(2)))
			return 1
		}))
	}

	// AddScore(10)
	L.SetGlobal("AddScore", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActAddScore), "", L.CheckNumber(1)))
		return 1
	}))

	// Win() / Lose()
	L.SetGlobal("Win", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActGameOver), "", lua.LString("win")))
		return 1
	}))
	L.SetGlobal("Lose", L.NewFunction(func(L *lua.LState) int {
		L.Push(descriptor(L, string(types.ActGameOver), "", lua.LString("lose")))
		return 1
	}))
}
