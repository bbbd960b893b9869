package scene

import (
	"fmt"

	"github.com/wavepath/tracer/pkg/geom"
	"github.com/wavepath/tracer/pkg/pbrt"
	"github.com/wavepath/tracer/pkg/rendererr"
)

// Build assembles a View from a parsed scene description:
// it flattens every mesh's triangles into the shared triangle array,
// derives flat geometric normals where a mesh supplied none, resolves
// each mesh's material name, and groups emissive meshes into area
// lights. A GeometryError aborts the build on an empty or degenerate
// mesh; a ConfigError aborts on a dangling material reference.
func Build(doc *pbrt.Document) (*View, error) {
	materialIndex := map[string]int32{}
	var materials []Material
	for name, reflectance := range doc.Materials {
		materialIndex[name] = int32(len(materials))
		materials = append(materials, Material{Kind: MaterialMatte, Reflectance: reflectance})
	}

	var tris []geom.Triangle
	var prims []Primitive
	type pendingLight struct {
		triIDs []int32
		l      geom.Vec3
	}
	var pendingLights []pendingLight

	for _, mesh := range doc.Meshes {
		if len(mesh.Indices) == 0 || len(mesh.Indices)%3 != 0 {
			return nil, rendererr.NewGeometryError("scene.Build", fmt.Errorf("mesh %q has no triangles", mesh.MaterialName))
		}
		matID, ok := materialIndex[mesh.MaterialName]
		if !ok {
			return nil, rendererr.NewConfigError("scene.Build", fmt.Errorf("mesh references unknown material %q", mesh.MaterialName))
		}

		var meshTriIDs []int32
		for t := 0; t < len(mesh.Indices); t += 3 {
			i0, i1, i2 := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
			p0, p1, p2 := mesh.Points[i0], mesh.Points[i1], mesh.Points[i2]

			var n0, n1, n2 geom.Vec3
			if mesh.Normals != nil {
				n0, n1, n2 = mesh.Normals[i0], mesh.Normals[i1], mesh.Normals[i2]
			} else {
				flat := flatNormal(p0, p1, p2)
				n0, n1, n2 = flat, flat, flat
			}

			tri := geom.NewTriangle(p0, p1, p2, n0, n1, n2, geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1})
			if tri.IsDegenerate() {
				return nil, rendererr.NewGeometryError("scene.Build", fmt.Errorf("mesh %q has a degenerate triangle", mesh.MaterialName))
			}

			triID := int32(len(tris))
			tris = append(tris, tri)
			prims = append(prims, Primitive{MaterialID: matID, LightID: -1})
			if mesh.Emission != nil {
				meshTriIDs = append(meshTriIDs, triID)
			}
		}
		if mesh.Emission != nil {
			pendingLights = append(pendingLights, pendingLight{triIDs: meshTriIDs, l: *mesh.Emission})
		}
	}

	var lights []Light
	for _, pl := range pendingLights {
		lightID := int32(len(lights))
		lights = append(lights, NewAreaLight(pl.triIDs, tris, pl.l))
		for _, triID := range pl.triIDs {
			prims[triID].LightID = lightID
		}
	}

	cam := NewCamera(doc.Eye, doc.Look, doc.Up, doc.FovY, doc.Width, doc.Height, 0, 1)
	return NewView(tris, prims, materials, lights, cam), nil
}

func flatNormal(p0, p1, p2 geom.Vec3) geom.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}
