package pbrt

import (
	"fmt"

	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/rendererr"
)

// Mesh is one trianglemesh Shape directive, resolved against the
// graphics state active when it was parsed: its world-space vertices
// and indices, the material bound to it, and the light emission if an
// AreaLightSource directive was active.
type Mesh struct {
	Points       []geom.Vec3 // world-space, CTM already applied
	Normals      []geom.Vec3 // nil: caller derives flat normals
	Indices      []int
	MaterialName string
	Emission     *geom.Vec3
}

// Document is the fully parsed, resolved scene description: camera
// parameters, render resolution, named materials and the triangle
// meshes that reference them. pkg/scene builds a View from a Document.
type Document struct {
	Eye, Look, Up geom.Vec3
	FovY          float64
	Width, Height int

	// Materials maps a MakeNamedMaterial name to its Lambertian
	// reflectance (matte is the only supported material type).
	Materials map[string]geom.Vec3
	Meshes    []Mesh
}

func newDocument() *Document {
	return &Document{
		Eye: geom.Vec3{Z: 1}, Look: geom.Vec3{}, Up: geom.Vec3{Y: 1},
		FovY: 90, Width: 640, Height: 480,
		Materials: map[string]geom.Vec3{},
	}
}

func (p *Parser) route(stmt *Statement) error {
	switch stmt.Type {
	case "LookAt":
		return p.routeLookAt(stmt)
	case "Camera":
		return p.routeCamera(stmt)
	case "Film":
		return p.routeFilm(stmt)
	case "Translate":
		return p.routeTranslate(stmt)
	case "Rotate":
		return p.routeRotate(stmt)
	case "Transform":
		return p.routeTransform(stmt)
	case "MakeNamedMaterial":
		return p.routeMakeNamedMaterial(stmt)
	case "NamedMaterial":
		if stmt.Subtype == "" {
			return rendererr.NewConfigError("NamedMaterial", fmt.Errorf("missing material name"))
		}
		p.state.materialName = stmt.Subtype
		return nil
	case "AreaLightSource":
		return p.routeAreaLightSource(stmt)
	case "Shape":
		return p.routeShape(stmt)
	case "Integrator", "Sampler", "PixelFilter", "WorldBegin", "WorldEnd":
		return nil // recognised but not semantically needed by this core
	default:
		return rendererr.NewConfigError("pbrt.route", fmt.Errorf("unknown directive %q", stmt.Type))
	}
}

func (p *Parser) routeLookAt(stmt *Statement) error {
	vals, err := floatsFromPositional(stmt, 9)
	if err != nil {
		return rendererr.NewConfigError("LookAt", err)
	}
	p.doc.Eye = geom.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	p.doc.Look = geom.Vec3{X: vals[3], Y: vals[4], Z: vals[5]}
	p.doc.Up = geom.Vec3{X: vals[6], Y: vals[7], Z: vals[8]}
	return nil
}

// floatsFromPositional reads exactly count floats from a positional
// directive -- e.g. LookAt's 9 numbers, which arrive as the remainder of
// the tokenized line. parseStatement records every number after the
// directive keyword under the synthetic "_" parameter key, and that key
// is the only place this reads from.
func floatsFromPositional(stmt *Statement, count int) ([]float64, error) {
	raw, ok := stmt.Parameters["_"]
	if !ok {
		return nil, fmt.Errorf("expected %d numeric values", count)
	}
	vals, err := raw.Floats()
	if err != nil {
		return nil, err
	}
	if len(vals) != count {
		return nil, fmt.Errorf("expected %d numeric values, got %d", count, len(vals))
	}
	return vals, nil
}

func (p *Parser) routeCamera(stmt *Statement) error {
	if fov, ok := stmt.Parameters["fov"]; ok {
		vals, err := fov.Floats()
		if err != nil || len(vals) != 1 {
			return rendererr.NewConfigError("Camera", fmt.Errorf("bad fov parameter"))
		}
		p.doc.FovY = vals[0]
	}
	return nil
}

func (p *Parser) routeFilm(stmt *Statement) error {
	if xr, ok := stmt.Parameters["xresolution"]; ok {
		vals, err := xr.Ints()
		if err != nil || len(vals) != 1 {
			return rendererr.NewConfigError("Film", fmt.Errorf("bad xresolution parameter"))
		}
		p.doc.Width = vals[0]
	}
	if yr, ok := stmt.Parameters["yresolution"]; ok {
		vals, err := yr.Ints()
		if err != nil || len(vals) != 1 {
			return rendererr.NewConfigError("Film", fmt.Errorf("bad yresolution parameter"))
		}
		p.doc.Height = vals[0]
	}
	return nil
}

func (p *Parser) routeTranslate(stmt *Statement) error {
	vals, err := floatsFromPositional(stmt, 3)
	if err != nil {
		return rendererr.NewConfigError("Translate", err)
	}
	p.state.ctm = p.state.ctm.Mul(geom.Translate(geom.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}))
	return nil
}

func (p *Parser) routeRotate(stmt *Statement) error {
	vals, err := floatsFromPositional(stmt, 4)
	if err != nil {
		return rendererr.NewConfigError("Rotate", err)
	}
	angle, axis := vals[0], geom.Vec3{X: vals[1], Y: vals[2], Z: vals[3]}
	switch {
	case axis.X != 0 && axis.Y == 0 && axis.Z == 0:
		p.state.ctm = p.state.ctm.Mul(geom.RotateX(angle))
	case axis.Y != 0 && axis.X == 0 && axis.Z == 0:
		p.state.ctm = p.state.ctm.Mul(geom.RotateY(angle))
	default:
		return rendererr.NewConfigError("Rotate", fmt.Errorf("only axis-aligned X/Y rotation is supported"))
	}
	return nil
}

func (p *Parser) routeTransform(stmt *Statement) error {
	vals, err := floatsFromPositional(stmt, 16)
	if err != nil {
		return rendererr.NewConfigError("Transform", err)
	}
	var m [16]float64
	copy(m[:], vals)
	p.state.ctm = p.state.ctm.Mul(geom.FromMatrix(m))
	return nil
}

func (p *Parser) routeMakeNamedMaterial(stmt *Statement) error {
	name := stmt.Subtype
	if name == "" {
		return rendererr.NewConfigError("MakeNamedMaterial", fmt.Errorf("missing material name"))
	}
	typeParam, ok := stmt.Parameters["type"]
	if !ok || typeParam.String() != "matte" {
		return rendererr.NewConfigError("MakeNamedMaterial", fmt.Errorf("unsupported material type for %q", name))
	}
	kd, ok := stmt.Parameters["Kd"]
	if !ok {
		return rendererr.NewConfigError("MakeNamedMaterial", fmt.Errorf("material %q missing Kd", name))
	}
	vals, err := kd.Floats()
	if err != nil || len(vals) != 3 {
		return rendererr.NewConfigError("MakeNamedMaterial", fmt.Errorf("material %q has malformed Kd", name))
	}
	p.doc.Materials[name] = geom.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	return nil
}

func (p *Parser) routeAreaLightSource(stmt *Statement) error {
	if stmt.Subtype != "diffuse" {
		return rendererr.NewConfigError("AreaLightSource", fmt.Errorf("unsupported area light type %q", stmt.Subtype))
	}
	lParam, ok := stmt.Parameters["L"]
	if !ok {
		return rendererr.NewConfigError("AreaLightSource", fmt.Errorf("missing L parameter"))
	}
	vals, err := lParam.Floats()
	if err != nil || len(vals) != 3 {
		return rendererr.NewConfigError("AreaLightSource", fmt.Errorf("malformed L parameter"))
	}
	l := geom.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	p.state.areaLightL = &l
	return nil
}

func (p *Parser) routeShape(stmt *Statement) error {
	if stmt.Subtype != "trianglemesh" {
		return rendererr.NewConfigError("Shape", fmt.Errorf("unsupported shape type %q", stmt.Subtype))
	}
	pParam, ok := stmt.Parameters["P"]
	if !ok {
		return rendererr.NewGeometryError("Shape(trianglemesh)", fmt.Errorf("missing P (points)"))
	}
	pts, err := pParam.Floats()
	if err != nil || len(pts)%3 != 0 {
		return rendererr.NewGeometryError("Shape(trianglemesh)", fmt.Errorf("malformed P parameter"))
	}
	iParam, ok := stmt.Parameters["indices"]
	if !ok {
		return rendererr.NewGeometryError("Shape(trianglemesh)", fmt.Errorf("missing indices"))
	}
	idx, err := iParam.Ints()
	if err != nil || len(idx)%3 != 0 || len(idx) == 0 {
		return rendererr.NewGeometryError("Shape(trianglemesh)", fmt.Errorf("malformed indices parameter"))
	}

	points := make([]geom.Vec3, len(pts)/3)
	for i := range points {
		local := geom.Vec3{X: pts[3*i], Y: pts[3*i+1], Z: pts[3*i+2]}
		points[i] = p.state.ctm.Point(local)
	}

	var normals []geom.Vec3
	if nParam, ok := stmt.Parameters["N"]; ok {
		ns, err := nParam.Floats()
		if err != nil || len(ns) != len(pts) {
			return rendererr.NewGeometryError("Shape(trianglemesh)", fmt.Errorf("malformed N parameter"))
		}
		normals = make([]geom.Vec3, len(ns)/3)
		for i := range normals {
			local := geom.Vec3{X: ns[3*i], Y: ns[3*i+1], Z: ns[3*i+2]}
			normals[i] = p.state.ctm.Normal(local).Normalize()
		}
	}

	if p.state.materialName == "" {
		return rendererr.NewConfigError("Shape(trianglemesh)", fmt.Errorf("no current material"))
	}
	if _, ok := p.doc.Materials[p.state.materialName]; !ok {
		return rendererr.NewConfigError("Shape(trianglemesh)", fmt.Errorf("unknown material %q", p.state.materialName))
	}

	rec := Mesh{Points: points, Normals: normals, Indices: idx, MaterialName: p.state.materialName}
	if p.state.areaLightL != nil {
		l := *p.state.areaLightL
		rec.Emission = &l
	}
	p.doc.Meshes = append(p.doc.Meshes, rec)
	return nil
}
