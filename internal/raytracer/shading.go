package raytracer

import (
	gomath "math"

	"github.com/Faultbox/hairtrace/pkg/math"
)

// Shading is the fixed lighting setup of a frame.
type Shading struct {
	HairColor  math.Vec3 // diffuse albedo
	LightColor math.Vec3 // specular color
	Light      math.Vec3 // unit direction towards the light, world space
	Eye        math.Vec3 // eye vector used by the specular lobe
	Shininess  float32
}

// DefaultShading returns a warm blond strand under a single key light.
func DefaultShading() Shading {
	return Shading{
		HairColor:  math.Vec3{X: 0.80, Y: 0.57, Z: 0.32}.Scale(0.40),
		LightColor: math.Vec3{X: 1.00, Y: 0.77, Z: 0.56}.Scale(0.20),
		Light:      math.Vec3{X: 1, Y: 2, Z: 1}.Normalize(),
		Eye:        math.Vec3{},
		Shininess:  80,
	}
}

// LightDirection converts an azimuth around +Y and an elevation above the
// XZ plane, both in degrees, to a unit direction towards the light.
// Azimuth 0 points along +Z.
func LightDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// kajiyaKay evaluates the Kajiya-Kay hair model for a strand with the given
// tangent. The sines are computed as (1 - cos²)/sqrt(1 - cos²), which is NaN
// when the tangent is exactly parallel to the light or eye vector.
func kajiyaKay(diffuse, specular math.Vec3, p float32, tangent, light, eye math.Vec3) math.Vec3 {
	cosTL := tangent.Dot(light)
	cosTE := tangent.Dot(eye)

	oneMinusCosTL2 := 1 - cosTL*cosTL
	oneMinusCosTE2 := 1 - cosTE*cosTE

	sinTL := oneMinusCosTL2 / float32(gomath.Sqrt(float64(oneMinusCosTL2)))
	sinTE := oneMinusCosTE2 / float32(gomath.Sqrt(float64(oneMinusCosTE2)))

	diffuseColor := diffuse.Scale(sinTL)
	specularColor := specular.Scale(float32(gomath.Pow(float64(cosTL*cosTE+sinTL*sinTE), float64(p))))

	return diffuseColor.Add(specularColor)
}

// clampUnit clamps v to [0, 1]. NaN maps to 0.
func clampUnit(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
