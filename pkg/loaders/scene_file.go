package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	// ErrUnknownDirective is returned for a line starting with an unrecognized keyword
	ErrUnknownDirective = errors.New("unknown directive")
	// ErrMissingSettings is returned when a scene file has no `set` line
	ErrMissingSettings = errors.New("scene settings (set) not defined")
	// ErrFieldCount is returned when a directive has the wrong number of parameters
	ErrFieldCount = errors.New("wrong number of parameters")
)

// ParseError locates a failure within a scene file
type ParseError struct {
	Line      int    // 1-based line number
	Directive string // Keyword of the failing line
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Directive, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// directiveArity is the exact parameter count of each directive
var directiveArity = map[string]int{
	"cam": 11, // position[3] lookAt[3] up[3] screenDistance screenWidth
	"set": 5,  // background[3] shadowRays maxRecursion
	"mtl": 11, // diffuse[3] specular[3] reflection[3] shininess transparency
	"sph": 5,  // center[3] radius material
	"pln": 5,  // normal[3] offset material
	"cub": 5,  // center[3] scale material
	"lgt": 9,  // position[3] color[3] specularIntensity shadowIntensity radius
}

// sceneParser accumulates directives into a scene
type sceneParser struct {
	scene       *scene.Scene
	hasSettings bool
}

// ParseScene parses a scene description from an io.Reader.
// The returned scene has been validated.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	p := &sceneParser{scene: scene.NewScene(scene.Settings{})}

	lineNumber := 0
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNumber++
		if err := p.processLine(scanner.Text(), lineNumber); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	if !p.hasSettings {
		return nil, ErrMissingSettings
	}
	if err := p.scene.Validate(); err != nil {
		return nil, err
	}

	return p.scene, nil
}

// LoadScene loads and parses a scene file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// processLine handles a single line of the scene file
func (p *sceneParser) processLine(line string, lineNumber int) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	keyword := fields[0]

	wrap := func(err error) error {
		return &ParseError{Line: lineNumber, Directive: keyword, Err: err}
	}

	arity, ok := directiveArity[keyword]
	if !ok {
		return wrap(fmt.Errorf("%w %q", ErrUnknownDirective, keyword))
	}
	if len(fields)-1 != arity {
		return wrap(fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, arity, len(fields)-1))
	}

	params, err := parseFloats(fields[1:])
	if err != nil {
		return wrap(err)
	}

	if err := p.apply(keyword, params); err != nil {
		return wrap(err)
	}
	return nil
}

// apply builds the scene element for a directive. Parameter counts are
// already checked against directiveArity.
func (p *sceneParser) apply(keyword string, params []float64) error {
	switch keyword {
	case "cam":
		p.scene.SetCamera(geometry.CameraConfig{
			Position:       vec(params[0:3]),
			LookAt:         vec(params[3:6]),
			Up:             vec(params[6:9]),
			ScreenDistance: params[9],
			ScreenWidth:    params[10],
		})

	case "set":
		shadowRays, err := toInt(params[3], "shadow ray count")
		if err != nil {
			return err
		}
		maxRecursion, err := toInt(params[4], "max recursion")
		if err != nil {
			return err
		}
		p.scene.Settings = scene.Settings{
			Background:   vec(params[0:3]),
			ShadowRays:   shadowRays,
			MaxRecursion: maxRecursion,
		}
		p.hasSettings = true
		slog.Debug("parsed scene settings",
			"background", p.scene.Settings.Background,
			"shadowRays", shadowRays,
			"maxRecursion", maxRecursion)

	case "mtl":
		p.scene.AddMaterial(material.NewPhong(
			vec(params[0:3]),
			vec(params[3:6]),
			vec(params[6:9]),
			params[9],
			params[10],
		))

	case "sph":
		idx, err := toInt(params[4], "material index")
		if err != nil {
			return err
		}
		if params[3] <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %g", params[3])
		}
		p.scene.AddSurface(geometry.NewSphere(vec(params[0:3]), params[3], idx))

	case "pln":
		idx, err := toInt(params[4], "material index")
		if err != nil {
			return err
		}
		p.scene.AddSurface(geometry.NewPlane(vec(params[0:3]), params[3], idx))

	case "cub":
		idx, err := toInt(params[4], "material index")
		if err != nil {
			return err
		}
		p.scene.AddSurface(geometry.NewCube(vec(params[0:3]), params[3], idx))

	case "lgt":
		p.scene.AddLight(lights.NewLight(
			vec(params[0:3]),
			vec(params[3:6]),
			params[6],
			params[7],
			params[8],
		))
	}
	return nil
}

// parseFloats converts every field to a float64
func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: invalid number %q", i+1, f)
		}
		values[i] = v
	}
	return values, nil
}

// toInt converts an integral float parameter to int
func toInt(v float64, what string) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be an integer, got %g", what, v)
	}
	return int(v), nil
}

func vec(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
