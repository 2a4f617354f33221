package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"thematrix/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// --- File types ---

type SceneFile struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []NodeDef `json:"nodes" yaml:"nodes"`
}

type NodeDef struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"` // camera, model or node
	Translation [3]float32  `json:"translation" yaml:"translation"`
	Rotation    [3]float32  `json:"rotation" yaml:"rotation"`
	Scale       *[3]float32 `json:"scale,omitempty" yaml:"scale,omitempty"`
	AABB        *AABBDef    `json:"aabb,omitempty" yaml:"aabb,omitempty"`
	Size        *[3]float32 `json:"size,omitempty" yaml:"size,omitempty"` // centered box
	Pill        bool        `json:"pill,omitempty" yaml:"pill,omitempty"`
	Color       int         `json:"color,omitempty" yaml:"color,omitempty"` // trigger id of a pill
	Movable     bool        `json:"movable,omitempty" yaml:"movable,omitempty"`
	Solid       *bool       `json:"solid,omitempty" yaml:"solid,omitempty"`
	Tint        string      `json:"tint,omitempty" yaml:"tint,omitempty"`
	Children    []NodeDef   `json:"children,omitempty" yaml:"children,omitempty"`
}

type AABBDef struct {
	Min [3]float32 `json:"min" yaml:"min"`
	Max [3]float32 `json:"max" yaml:"max"`
}

const (
	TypeNode   = "node"
	TypeModel  = "model"
	TypeCamera = "camera"
)

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
	"DarkGreen": rl.DarkGreen,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) (rl.Color, error) {
	if name == "" {
		return rl.Color{}, nil
	}
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	var r, g, b, a uint8
	if _, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); err == nil {
		return rl.NewColor(r, g, b, a), nil
	}
	return rl.Color{}, errors.Errorf("unknown tint %q", name)
}

func lookupColorName(c rl.Color) string {
	if c == (rl.Color{}) {
		return ""
	}
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Loading ---

// LoadScene reads a JSON or YAML scene file, picked by extension, and builds it.
func LoadScene(path string) (*engine.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	sf, err := ParseScene(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse scene %s", path)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	scene, err := BuildScene(sf)
	if err != nil {
		return nil, errors.Wrapf(err, "build scene %s", path)
	}
	return scene, nil
}

// ParseScene decodes data in the format named by ext (".json", ".yaml" or ".yml").
func ParseScene(data []byte, ext string) (*SceneFile, error) {
	var sf SceneFile
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &sf); err != nil {
			return nil, errors.Wrap(err, "json")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
	default:
		return nil, errors.Errorf("unsupported scene format %q", ext)
	}
	return &sf, nil
}

// BuildScene turns a parsed file into a scene. Exactly one camera node is
// required and it must be a root.
func BuildScene(sf *SceneFile) (*engine.Scene, error) {
	scene := engine.NewScene(sf.Name)
	cameras := 0
	for i := range sf.Nodes {
		def := &sf.Nodes[i]
		n, err := buildNode(def, &cameras, true)
		if err != nil {
			return nil, errors.Wrapf(err, "nodes[%d]", i)
		}
		scene.AddRoot(n)
	}
	if cameras != 1 {
		return nil, errors.Errorf("scene %q needs exactly one camera, found %d", sf.Name, cameras)
	}
	return scene, nil
}

func buildNode(def *NodeDef, cameras *int, root bool) (*engine.Node, error) {
	n := engine.NewNode(def.Name)
	n.Transform.Translation = vec(def.Translation)
	n.Transform.Rotation = vec(def.Rotation)
	if def.Scale != nil {
		n.Transform.Scale = vec(*def.Scale)
	}

	switch def.Type {
	case "", TypeNode, TypeModel:
	case TypeCamera:
		if !root {
			return nil, errors.Errorf("camera %q must be a root node", def.Name)
		}
		*cameras++
		n.Caps.IsCamera = true
		n.Caps.HasVelocity = true
	default:
		return nil, errors.Errorf("node %q: unknown type %q", def.Name, def.Type)
	}

	switch {
	case def.AABB != nil && def.Size != nil:
		return nil, errors.Errorf("node %q: aabb and size are exclusive", def.Name)
	case def.AABB != nil:
		n.AABB = engine.AABB{Min: vec(def.AABB.Min), Max: vec(def.AABB.Max)}
	case def.Size != nil:
		half := rl.Vector3Scale(vec(*def.Size), 0.5)
		n.AABB = engine.AABB{Min: rl.Vector3Negate(half), Max: half}
	}

	if def.Solid != nil {
		n.Caps.Solid = *def.Solid
	}
	if def.Pill {
		// pills are consumed, never pushed against or carried
		n.Caps.IsTrigger = true
		n.Caps.Solid = false
		n.TriggerID = def.Color
	} else {
		n.Caps.Movable = def.Movable
	}

	tint, err := lookupColor(def.Tint)
	if err != nil {
		return nil, errors.Wrapf(err, "node %q", def.Name)
	}
	n.Tint = tint

	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.UpdateTransform()

	for i := range def.Children {
		c, err := buildNode(&def.Children[i], cameras, false)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.children[%d]", def.Name, i)
		}
		n.AddChild(c)
	}
	return n, nil
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Saving ---

// ExportScene describes the current scene as a file. Carried nodes are
// written as roots at their current world position so a reload drops them
// where they are.
func ExportScene(scene *engine.Scene) *SceneFile {
	sf := &SceneFile{Name: scene.Name}
	var carried []NodeDef
	for _, r := range scene.Roots {
		sf.Nodes = append(sf.Nodes, exportNode(r, &carried))
	}
	sf.Nodes = append(sf.Nodes, carried...)
	return sf
}

func exportNode(n *engine.Node, carried *[]NodeDef) NodeDef {
	def := NodeDef{
		Name:        n.Name,
		Translation: arr(n.Transform.Translation),
		Rotation:    arr(n.Transform.Rotation),
		Tint:        lookupColorName(n.Tint),
	}
	if n.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		s := arr(n.Transform.Scale)
		def.Scale = &s
	}
	if n.Caps.IsCamera {
		def.Type = TypeCamera
	}
	if !n.AABB.Empty() {
		def.AABB = &AABBDef{Min: arr(n.AABB.Min), Max: arr(n.AABB.Max)}
	}
	switch {
	case n.Caps.IsTrigger:
		def.Pill = true
		def.Color = n.TriggerID
	case !n.Caps.Solid:
		solid := false
		def.Solid = &solid
	}
	def.Movable = n.Caps.Movable

	for _, c := range n.Children {
		if a := c.Attachment; a != nil {
			cd := exportNode(c, carried)
			cd.Translation = arr(c.WorldPosition())
			cd.Rotation = arr(a.SavedRotation)
			cd.Scale = nil
			if a.SavedScale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
				s := arr(a.SavedScale)
				cd.Scale = &s
			}
			*carried = append(*carried, cd)
			continue
		}
		def.Children = append(def.Children, exportNode(c, carried))
	}
	return def
}

// SaveScene writes scene to path, as YAML or JSON depending on the extension.
func SaveScene(path string, scene *engine.Scene) error {
	sf := ExportScene(scene)

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(sf, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(sf)
	default:
		return errors.Errorf("unsupported scene format %q", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrap(err, "marshal scene")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write scene")
	}
	return nil
}
