package scene

// Primitive binds one triangle to its material and (optionally) the light
// it emits as. LightID is -1 when the primitive is not emissive.
type Primitive struct {
	MaterialID int32
	LightID    int32
}
