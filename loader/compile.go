// Package loader loads Lua game content into Go structs at load time.
// The Lua VM is discarded after loading; nothing Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getStringDefault returns a string field, or def if missing.
func getStringDefault(tbl *lua.LTable, key, def string) string {
	if s := getString(tbl, key); s != "" {
		return s
	}
	return def
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a scalar Lua value to a Go value. Tables become nil.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	default:
		return nil
	}
}

// arrayTables returns the table elements of a Lua array, in index order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.Len(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// arrayStrings returns the string elements of a Lua array, in index order.
func arrayStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.Len(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	m := map[string]string{}
	if tbl == nil {
		return m
	}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &state.Defs{
		Manifest: compileManifest(coll.game),
		Vocabulary: types.Vocabulary{
			VerbSynonyms:      map[string]string{},
			NounSynonyms:      map[string]string{},
			DirectionSynonyms: map[string]string{},
		},
	}

	for _, raw := range coll.rooms {
		defs.Rooms = append(defs.Rooms, compileRoom(raw))
	}
	for _, raw := range coll.items {
		defs.Items = append(defs.Items, compileItem(raw))
	}
	for _, raw := range coll.events {
		defs.Events = append(defs.Events, compileEvent(raw))
	}
	for _, raw := range coll.timers {
		defs.Timers = append(defs.Timers, compileTimer(raw))
	}
	for _, tbl := range coll.vocab {
		mergeVocabulary(&defs.Vocabulary, tbl)
	}

	return defs, nil
}

func compileManifest(tbl *lua.LTable) types.Manifest {
	return types.Manifest{
		Title:     getString(tbl, "title"),
		Author:    getStringDefault(tbl, "author", "Unknown"),
		Version:   getStringDefault(tbl, "version", "1.0"),
		MaxScore:  getInt(tbl, "max_score", 0),
		StartRoom: getString(tbl, "start"),
		Intro:     getString(tbl, "intro"),
		Help:      getString(tbl, "help"),
	}
}

func compileRoom(raw rawDef) types.Room {
	tbl := raw.table
	room := types.Room{
		ID:              raw.id,
		Name:            getStringDefault(tbl, "name", raw.id),
		Description:     getString(tbl, "description"),
		Dark:            getBool(tbl, "dark", false),
		DarkDescription: getStringDefault(tbl, "dark_description", types.DefaultDarkDescription),
		FirstVisitText:  getString(tbl, "first_visit_text"),
		VisitFlag:       getString(tbl, "visit_flag"),
	}
	for _, et := range arrayTables(getTable(tbl, "exits")) {
		room.Exits = append(room.Exits, types.Exit{
			Direction:   types.Direction(getString(et, "direction")),
			Destination: getString(et, "destination"),
			Locked:      getBool(et, "locked", false),
			LockFlag:    getString(et, "lock_flag"),
			LockMessage: getStringDefault(et, "lock_message", types.DefaultLockMessage),
		})
	}
	return room
}

func compileItem(raw rawDef) types.Item {
	tbl := raw.table
	return types.Item{
		ID:              raw.id,
		Name:            getStringDefault(tbl, "name", raw.id),
		Description:     getString(tbl, "description"),
		RoomDescription: getString(tbl, "room_description"),
		Location:        getStringDefault(tbl, "location", types.LocationDestroyed),
		Takeable:        getBool(tbl, "takeable", true),
		Weight:          getInt(tbl, "weight", 1),
		Aliases:         arrayStrings(getTable(tbl, "aliases")),
		CombineWith:     getString(tbl, "combine_with"),
		CombineResult:   getString(tbl, "combine_result"),
		CombineMessage:  getString(tbl, "combine_message"),
	}
}

func compileEvent(raw rawDef) types.Event {
	tbl := raw.table
	e := types.Event{
		ID:              raw.id,
		Verb:            getString(tbl, "verb"),
		Noun:            getString(tbl, "noun"),
		Room:            getString(tbl, "room"),
		OverrideBuiltin: getBool(tbl, "override_builtin", true),
		Once:            getBool(tbl, "once", false),
		Priority:        getInt(tbl, "priority", 0),
	}
	for _, ct := range arrayTables(getTable(tbl, "conditions")) {
		e.Conditions = append(e.Conditions, compileCondition(ct))
	}
	for _, at := range arrayTables(getTable(tbl, "actions")) {
		e.Actions = append(e.Actions, compileAction(at))
	}
	return e
}

func compileCondition(tbl *lua.LTable) types.Condition {
	return types.Condition{
		Kind:   types.ConditionKind(getString(tbl, "kind")),
		Target: getString(tbl, "target"),
		Value:  getInt(tbl, "value", 0),
	}
}

func compileAction(tbl *lua.LTable) types.Action {
	return types.Action{
		Kind:   types.ActionKind(getString(tbl, "kind")),
		Target: getString(tbl, "target"),
		Value:  toGoValue(tbl.RawGetString("value")),
	}
}

func compileTimer(raw rawDef) types.Timer {
	tbl := raw.table
	return types.Timer{
		Name:            raw.id,
		Counter:         getString(tbl, "counter"),
		Interval:        getInt(tbl, "interval", 1),
		OnZeroEvent:     getString(tbl, "on_zero"),
		MessageTemplate: getString(tbl, "message"),
		Active:          getBool(tbl, "active", false),
	}
}

func mergeVocabulary(v *types.Vocabulary, tbl *lua.LTable) {
	for k, val := range tableToStringMap(getTable(tbl, "verbs")) {
		v.VerbSynonyms[k] = val
	}
	for k, val := range tableToStringMap(getTable(tbl, "nouns")) {
		v.NounSynonyms[k] = val
	}
	for k, val := range tableToStringMap(getTable(tbl, "directions")) {
		v.DirectionSynonyms[k] = val
	}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
