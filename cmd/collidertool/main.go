// collidertool is a CLI utility for inspecting and validating collider scene files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/internal/scene"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if level := os.Getenv("COLLIDERTOOL_LOG"); level != "" {
		if err := logger.Init(level, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		}
		defer logger.Sync()
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand.
func run(command string, args []string, w io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, w)
	case "bounds":
		return cmdBounds(args, w)
	case "geometry", "geom":
		return cmdGeometry(args, w)
	case "pick":
		return cmdPick(args, w)
	case "check":
		return cmdCheck(args, w)
	case "fmt":
		return cmdFmt(args, w)
	case "help", "-h", "--help":
		printUsage(w)
		return nil
	default:
		printUsage(w)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `collidertool - collider scene utility

Usage:
  collidertool <command> [options]

Commands:
  info <scene.yaml>...                         Show scene summary
  bounds <scene.yaml>                          Print cached bounds of every collider
  geometry <scene.yaml>                        Print backend shape descriptors
  pick -from x,y,z -dir x,y,z <scene.yaml>     Cast a ray and print the nearest hit
  check <scene.yaml>...                        Validate bounds and geometry
  fmt [-o out.yaml] <scene.yaml>               Rewrite a scene without default values

Examples:
  collidertool info scenes/*.yaml
  collidertool pick -from 0,10,0 -dir 0,-1,0 scenes/dock.yaml
  collidertool fmt -o dock.min.yaml scenes/dock.yaml`)
}

func cmdInfo(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: collidertool info <scene.yaml>...")
	}

	scenes, err := scene.LoadAll(context.Background(), args, scene.Options{Backend: &physics.NullBackend{}})
	if err != nil {
		return err
	}
	defer releaseAll(scenes)

	for i, s := range scenes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		shapes, _ := s.Colliders()

		kinds := make(map[collider.Kind]int)
		triggers := 0
		for _, c := range shapes {
			kinds[c.Kind()]++
			if c.IsTrigger() {
				triggers++
			}
		}

		fmt.Fprintf(w, "Scene:     %s (%s)\n", s.Name, args[i])
		fmt.Fprintf(w, "Nodes:     %d\n", s.Len())
		fmt.Fprintf(w, "Colliders: %d (%d triggers)\n", len(shapes), triggers)
		for _, k := range sortedKinds(kinds) {
			fmt.Fprintf(w, "  %-8s %d\n", k, kinds[k])
		}
		if box, ok := s.Bounds(); ok {
			fmt.Fprintf(w, "Bounds:    %s .. %s\n", formatVec3(box.Min), formatVec3(box.Max))
		}
	}
	return nil
}

func cmdBounds(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("bounds", flag.ContinueOnError)
	fs.SetOutput(w)
	nodeName := fs.String("node", "", "Only print colliders of this node")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: collidertool bounds [-node name] <scene.yaml>")
	}

	s, err := scene.Load(fs.Arg(0), scene.Options{Backend: &physics.NullBackend{}})
	if err != nil {
		return err
	}
	defer s.Release()

	shapes, owners := s.Colliders()
	for i, c := range shapes {
		if *nodeName != "" && owners[i].Name != *nodeName {
			continue
		}
		box := c.BoundingBox()
		sphere := c.BoundingSphere()
		obb := c.OrientedBox()
		fmt.Fprintf(w, "%s/%s %s\n", owners[i].Name, c.Kind(), c.ID())
		fmt.Fprintf(w, "  aabb   %s .. %s\n", formatVec3(box.Min), formatVec3(box.Max))
		fmt.Fprintf(w, "  sphere %s r=%g\n", formatVec3(sphere.Center), sphere.Radius)
		fmt.Fprintf(w, "  obb    center=%s extents=%s\n", formatVec3(obb.Center()), formatVec3(obb.Extents))
	}
	return nil
}

func cmdGeometry(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: collidertool geometry <scene.yaml>")
	}

	rec := physics.NewRecorder()
	s, err := scene.Load(args[0], scene.Options{Backend: rec})
	if err != nil {
		return err
	}
	defer s.Release()

	shapes, owners := s.Colliders()
	for i, c := range shapes {
		g := c.GetGeometry()
		fmt.Fprintf(w, "%s/%s %s %016x\n", owners[i].Name, c.Kind(), g, g.Hash())
	}

	ops := make(map[physics.Op]int)
	for _, call := range rec.Calls() {
		ops[call.Op]++
	}
	fmt.Fprintf(w, "backend: %d created, %d updated, %d live\n",
		ops[physics.OpCreate], ops[physics.OpUpdate], rec.Live())
	return nil
}

func cmdPick(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(w)
	from := fs.String("from", "0,0,0", "Ray origin x,y,z")
	dir := fs.String("dir", "0,0,-1", "Ray direction x,y,z")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: collidertool pick -from x,y,z -dir x,y,z <scene.yaml>")
	}

	origin, err := parseVec3(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	direction, err := parseVec3(*dir)
	if err != nil {
		return fmt.Errorf("-dir: %w", err)
	}
	if direction.LengthSquared() == 0 {
		return fmt.Errorf("-dir must not be zero")
	}

	s, err := scene.Load(fs.Arg(0), scene.Options{Backend: &physics.NullBackend{}})
	if err != nil {
		return err
	}
	defer s.Release()

	hit, ok := s.Pick(geom.NewRay(origin, direction))
	if !ok {
		fmt.Fprintln(w, "no hit")
		return nil
	}
	fmt.Fprintf(w, "hit %s/%s %s\n", hit.Node.Name, hit.Collider.Kind(), hit.Collider.ID())
	fmt.Fprintf(w, "  distance %g\n", hit.Distance)
	fmt.Fprintf(w, "  point    %s\n", formatVec3(hit.Point))
	fmt.Fprintf(w, "  normal   %s\n", formatVec3(hit.Normal))
	return nil
}

// cmdCheck verifies that every collider's cached volumes nest and that the
// backend holds its current descriptor.
func cmdCheck(args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: collidertool check <scene.yaml>...")
	}

	rec := physics.NewRecorder()
	scenes, err := scene.LoadAll(context.Background(), args, scene.Options{Backend: rec})
	if err != nil {
		return err
	}
	defer releaseAll(scenes)

	failures := 0
	for i, s := range scenes {
		shapes, owners := s.Colliders()
		for j, c := range shapes {
			for _, problem := range checkCollider(c, rec) {
				fmt.Fprintf(w, "FAIL %s: %s/%s %s: %s\n", args[i], owners[j].Name, c.Kind(), c.ID(), problem)
				failures++
			}
		}
		fmt.Fprintf(w, "checked %s: %d colliders\n", args[i], len(shapes))
	}

	if failures > 0 {
		return fmt.Errorf("%d problems found", failures)
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func checkCollider(c collider.Shape, rec *physics.Recorder) []string {
	var problems []string

	box := grow(c.BoundingBox())
	sphere := c.BoundingSphere()
	for _, corner := range c.OrientedBox().Corners() {
		if !box.ContainsPoint(corner) {
			problems = append(problems, "aabb does not enclose oriented box")
			break
		}
	}
	if c.Kind() == collider.KindSphere {
		// The sphere is exact; the box encloses it instead
		r := math.Splat(sphere.Radius)
		if !box.ContainsBox(geom.NewBoundingBox(sphere.Center.Sub(r), sphere.Center.Add(r))) {
			problems = append(problems, "aabb does not enclose sphere")
		}
	} else if !sphere.ContainsBox(c.BoundingBox()) {
		problems = append(problems, "sphere does not enclose aabb")
	}

	g := c.GetGeometry()
	if live, ok := rec.Shape(c.Handle()); !ok {
		problems = append(problems, "no backend shape")
	} else if live.Hash() != g.Hash() {
		problems = append(problems, fmt.Sprintf("backend has %s, collider wants %s", live, g))
	}
	return problems
}

func cmdFmt(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(w)
	out := fs.String("o", "", "Output path (default: overwrite input)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: collidertool fmt [-o out.yaml] <scene.yaml>")
	}

	in := fs.Arg(0)
	s, err := scene.Load(in, scene.Options{Backend: &physics.NullBackend{}})
	if err != nil {
		return err
	}
	defer s.Release()

	path := *out
	if path == "" {
		path = in
	}
	if err := s.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}

// grow pads the box to absorb float32 rounding between volumes computed
// along different paths.
func grow(b geom.BoundingBox) geom.BoundingBox {
	slack := math.Splat(1e-4 * max(1, b.Size().MaxComponent()))
	return geom.BoundingBox{Min: b.Min.Sub(slack), Max: b.Max.Add(slack)}
}

func releaseAll(scenes []*scene.Scene) {
	for _, s := range scenes {
		s.Release()
	}
}

func sortedKinds(m map[collider.Kind]int) []collider.Kind {
	kinds := make([]collider.Kind, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
