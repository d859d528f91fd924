package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// parseLua evaluates a Lua layout script in a sandboxed state. The script
// returns a table of the same shape as the TOML layout:
//
//	return {
//	  pad = { rows = 4, cols = 4, common = {"gui"} },
//	  slot = {
//	    { index = 0, mode = "group", group = "scene", hue = "red", on = {"f13"} },
//	  },
//	}
//
// Scripts get the base, table, string and math libraries only; io, os and
// package stay closed so a layout cannot touch the system.
func parseLua(path string, data []byte) (*rawFile, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	if err := L.DoString(string(data)); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	ret := L.Get(-1)
	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Path:    path,
			Message: fmt.Sprintf("layout script must return a table, got %s", ret.Type()),
		}
	}

	raw, err := luaToRaw(table)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return raw, nil
}

// openSafeLibraries opens only the Lua standard libraries a layout script
// needs. io, os, debug and package are intentionally left closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// luaToRaw converts the returned layout table into the shared raw form.
func luaToRaw(t *lua.LTable) (*rawFile, error) {
	raw := &rawFile{}

	if pad, ok := asTable(t.RawGetString("pad")); ok {
		raw.Pad.Rows = int(lua.LVAsNumber(pad.RawGetString("rows")))
		raw.Pad.Cols = int(lua.LVAsNumber(pad.RawGetString("cols")))
		raw.Pad.Device = lua.LVAsString(pad.RawGetString("device"))
		raw.Pad.Port = lua.LVAsString(pad.RawGetString("port"))
		raw.Pad.TickMs = int(lua.LVAsNumber(pad.RawGetString("tick_ms")))
		if v := pad.RawGetString("transmit"); v != lua.LNil {
			b := lua.LVAsBool(v)
			raw.Pad.Transmit = &b
		}
		common, err := luaStrings(pad.RawGetString("common"), "pad.common")
		if err != nil {
			return nil, err
		}
		raw.Pad.Common = common
	}

	slots, ok := asTable(t.RawGetString("slot"))
	if !ok {
		return raw, nil
	}

	var convErr error
	slots.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		entry, ok := asTable(v)
		if !ok {
			convErr = fmt.Errorf("slot entries must be tables, got %s", v.Type())
			return
		}
		rs := rawSlot{
			Index: int(lua.LVAsNumber(entry.RawGetString("index"))),
			Mode:  lua.LVAsString(entry.RawGetString("mode")),
			Hue:   lua.LVAsString(entry.RawGetString("hue")),
			Group: lua.LVAsString(entry.RawGetString("group")),
		}
		if rs.On, convErr = luaStrings(entry.RawGetString("on"), "on"); convErr != nil {
			return
		}
		if rs.Off, convErr = luaStrings(entry.RawGetString("off"), "off"); convErr != nil {
			return
		}
		raw.Slot = append(raw.Slot, rs)
	})
	if convErr != nil {
		return nil, convErr
	}
	return raw, nil
}

// asTable narrows a Lua value to a table.
func asTable(v lua.LValue) (*lua.LTable, bool) {
	t, ok := v.(*lua.LTable)
	return t, ok
}

// luaStrings converts a Lua array of strings. A single string is accepted
// as a one-element list.
func luaStrings(v lua.LValue, field string) ([]string, error) {
	switch val := v.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return []string{string(val)}, nil
	case *lua.LTable:
		var out []string
		var err error
		val.ForEach(func(_, item lua.LValue) {
			if err != nil {
				return
			}
			s, ok := item.(lua.LString)
			if !ok {
				err = fmt.Errorf("%s entries must be strings, got %s", field, item.Type())
				return
			}
			out = append(out, string(s))
		})
		return out, err
	default:
		return nil, fmt.Errorf("%s must be a string list, got %s", field, v.Type())
	}
}
