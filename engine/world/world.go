// Package world holds the room and item registries and the noun index.
// Rooms never change after load; items change only through MoveItem.
package world

import "github.com/nathoo/adventcore/types"

// World is the registry of rooms and items, kept in load order.
type World struct {
	rooms     map[string]*types.Room
	roomOrder []string
	items     map[string]*types.Item
	itemOrder []string
	nounIndex map[string][]string // id or alias → item IDs
}

// New builds a world from loaded definitions. Items are copied so the
// definitions can seed a fresh world again later (restore, new game).
func New(rooms []types.Room, items []types.Item) *World {
	w := &World{
		rooms:     make(map[string]*types.Room, len(rooms)),
		items:     make(map[string]*types.Item, len(items)),
		nounIndex: map[string][]string{},
	}
	for i := range rooms {
		r := rooms[i]
		if _, dup := w.rooms[r.ID]; !dup {
			w.roomOrder = append(w.roomOrder, r.ID)
		}
		w.rooms[r.ID] = &r
	}
	for i := range items {
		it := items[i]
		it.Aliases = append([]string(nil), items[i].Aliases...)
		if _, dup := w.items[it.ID]; !dup {
			w.itemOrder = append(w.itemOrder, it.ID)
		}
		w.items[it.ID] = &it
		for _, noun := range append([]string{it.ID}, it.Aliases...) {
			w.nounIndex[noun] = append(w.nounIndex[noun], it.ID)
		}
	}
	return w
}

// Room returns the room with the given ID.
func (w *World) Room(id string) (*types.Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// Item returns the item with the given ID.
func (w *World) Item(id string) (*types.Item, bool) {
	it, ok := w.items[id]
	return it, ok
}

// Rooms returns every room in load order.
func (w *World) Rooms() []*types.Room {
	out := make([]*types.Room, 0, len(w.roomOrder))
	for _, id := range w.roomOrder {
		out = append(out, w.rooms[id])
	}
	return out
}

// Items returns every item in load order, destroyed ones included.
func (w *World) Items() []*types.Item {
	out := make([]*types.Item, 0, len(w.itemOrder))
	for _, id := range w.itemOrder {
		out = append(out, w.items[id])
	}
	return out
}

// FindExit returns the first exit of room facing dir.
func (w *World) FindExit(room *types.Room, dir types.Direction) (*types.Exit, bool) {
	if room == nil {
		return nil, false
	}
	for i := range room.Exits {
		if room.Exits[i].Direction == dir {
			return &room.Exits[i], true
		}
	}
	return nil, false
}

// ItemsAt returns the items whose location equals loc, in load order.
func (w *World) ItemsAt(loc string) []*types.Item {
	var out []*types.Item
	for _, id := range w.itemOrder {
		if it := w.items[id]; it.Location == loc {
			out = append(out, it)
		}
	}
	return out
}

// ItemsInRoom returns the items lying in the given room.
func (w *World) ItemsInRoom(roomID string) []*types.Item {
	return w.ItemsAt(roomID)
}

// ItemsInInventory returns the items the player carries.
func (w *World) ItemsInInventory() []*types.Item {
	return w.ItemsAt(types.LocationCarried)
}

// ResolveNoun returns every item whose ID or alias equals noun, in load
// order. Callers disambiguate by location.
func (w *World) ResolveNoun(noun string) []*types.Item {
	ids := w.nounIndex[noun]
	out := make([]*types.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := w.items[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// MoveItem overwrites an item's location. Unknown IDs are ignored.
func (w *World) MoveItem(id, loc string) {
	if it, ok := w.items[id]; ok {
		it.Location = loc
	}
}

// DestroyItem moves an item to the destroyed sentinel.
func (w *World) DestroyItem(id string) {
	w.MoveItem(id, types.LocationDestroyed)
}

// IsLocation reports whether loc is a room ID or one of the sentinels.
func (w *World) IsLocation(loc string) bool {
	if loc == types.LocationCarried || loc == types.LocationDestroyed {
		return true
	}
	_, ok := w.rooms[loc]
	return ok
}
