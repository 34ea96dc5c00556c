package app

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"wirespin/gfx"
	"wirespin/hal"
	"wirespin/scene"
)

var ErrNoUpdate = errors.New("app: script does not define update(dt, t)")

// script runs a Lua animation hook. The script defines update(dt, t), both in
// seconds, and moves nodes through the functions registered below.
type script struct {
	L      *lua.LState
	update *lua.LFunction

	root *scene.Node
	rig  *rig
	log  hal.Logger
}

func newScript(path, src string, root *scene.Node, r *rig, log hal.Logger) (*script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	s := &script{L: L, root: root, rig: r, log: log}
	for name, fn := range map[string]lua.LGFunction{
		"set_translation": s.setTranslation,
		"get_translation": s.getTranslation,
		"set_rotation":    s.setRotation,
		"rotate":          s.rotate,
		"set_scale":       s.setScale,
		"set_color":       s.setColor,
		"orbit":           s.setOrbit,
		"log":             s.logLine,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	var err error
	if path != "" {
		err = L.DoFile(path)
	} else {
		err = L.DoString(src)
	}
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("app: script: %w", err)
	}

	fn, ok := L.GetGlobal("update").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoUpdate
	}
	s.update = fn
	return s, nil
}

func (s *script) call(dt, t float64) error {
	err := s.L.CallByParam(lua.P{Fn: s.update, NRet: 0, Protect: true}, lua.LNumber(dt), lua.LNumber(t))
	if err != nil {
		return fmt.Errorf("app: script update: %w", err)
	}
	return nil
}

func (s *script) close() { s.L.Close() }

func (s *script) node(L *lua.LState) *scene.Node {
	name := L.CheckString(1)
	n := s.root.Find(name)
	if n == nil {
		L.RaiseError("no node named %q", name)
	}
	return n
}

func checkVec3(L *lua.LState, at int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(L.CheckNumber(at)),
		float32(L.CheckNumber(at + 1)),
		float32(L.CheckNumber(at + 2)),
	}
}

func (s *script) setTranslation(L *lua.LState) int {
	s.node(L).SetTranslation(checkVec3(L, 2))
	return 0
}

func (s *script) getTranslation(L *lua.LState) int {
	t := s.node(L).Translation()
	L.Push(lua.LNumber(t[0]))
	L.Push(lua.LNumber(t[1]))
	L.Push(lua.LNumber(t[2]))
	return 3
}

func (s *script) setRotation(L *lua.LState) int {
	n := s.node(L)
	v := checkVec3(L, 2)
	w := float32(L.CheckNumber(5))
	n.SetRotation(mgl32.Quat{W: w, V: v}.Normalize())
	return 0
}

// rotate(name, angle, ax, ay, az) turns a node about a world-space axis.
func (s *script) rotate(L *lua.LState) int {
	n := s.node(L)
	angle := float32(L.CheckNumber(2))
	axis := checkVec3(L, 3)
	if axis.Len() == 0 {
		L.ArgError(3, "zero rotation axis")
	}
	n.SetRotation(mgl32.QuatRotate(angle, axis.Normalize()).Mul(n.Rotation()))
	return 0
}

func (s *script) setScale(L *lua.LState) int {
	s.node(L).SetScale(checkVec3(L, 2))
	return 0
}

// set_color(name, preset) recolors every node with that name.
func (s *script) setColor(L *lua.LState) int {
	name := L.CheckString(1)
	cn := L.CheckString(2)
	c, ok := gfx.ColorByName(cn)
	if !ok {
		L.ArgError(2, fmt.Sprintf("unknown color %q", cn))
	}
	s.root.SetChildColor(name, c)
	return 0
}

// orbit(yaw, pitch, radius) moves the camera onto a sphere around its target.
func (s *script) setOrbit(L *lua.LState) int {
	if s.rig.orbit == nil {
		s.rig.orbit = &OrbitController{Target: s.rig.base.Target, MinRadius: 0.2}
	}
	o := s.rig.orbit
	o.Yaw = float32(L.CheckNumber(1))
	o.Pitch = float32(L.CheckNumber(2))
	o.Radius = float32(L.OptNumber(3, lua.LNumber(o.Radius)))
	return 0
}

func (s *script) logLine(L *lua.LState) int {
	if s.log != nil {
		s.log.WriteLineString("script: " + L.CheckString(1))
	}
	return 0
}
