package scene

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// File is the on-disk scene layout.
type File struct {
	Name  string     `yaml:"name"`
	Nodes []NodeFile `yaml:"nodes"`
}

// NodeFile describes one node. Parents are referenced by name and may be
// declared after their children. Missing rotation and scale mean identity.
type NodeFile struct {
	ID        uuid.UUID             `yaml:"id"`
	Name      string                `yaml:"name"`
	Parent    string                `yaml:"parent,omitempty"`
	Position  math.Vec3             `yaml:"position"`
	Rotation  *math.Quat            `yaml:"rotation,omitempty"`
	Scale     *math.Vec3            `yaml:"scale,omitempty"`
	Colliders []collider.Properties `yaml:"colliders,omitempty"`
}

// Build creates a scene from its file form and computes all transforms.
func Build(f File, opts Options) (*Scene, error) {
	byName := make(map[string]NodeFile, len(f.Nodes))
	for _, nf := range f.Nodes {
		if _, dup := byName[nf.Name]; dup {
			return nil, fmt.Errorf("duplicate node %q", nf.Name)
		}
		byName[nf.Name] = nf
	}

	s := New(f.Name, opts)
	var add func(nf NodeFile, visiting map[string]bool) error
	add = func(nf NodeFile, visiting map[string]bool) error {
		if _, done := s.byName[nf.Name]; done {
			return nil
		}
		if visiting[nf.Name] {
			return fmt.Errorf("node %q: parent cycle", nf.Name)
		}
		visiting[nf.Name] = true

		if nf.Parent != "" {
			parent, ok := byName[nf.Parent]
			if !ok {
				return fmt.Errorf("node %q: unknown parent %q", nf.Name, nf.Parent)
			}
			if err := add(parent, visiting); err != nil {
				return err
			}
		}
		return s.addNodeFile(nf)
	}
	for _, nf := range f.Nodes {
		if err := add(nf, map[string]bool{}); err != nil {
			s.Release()
			return nil, err
		}
	}

	s.UpdateTransforms()
	return s, nil
}

func (s *Scene) addNodeFile(nf NodeFile) error {
	n, err := s.AddNode(nf.Name, nf.Parent)
	if err != nil {
		return err
	}
	if nf.ID != uuid.Nil {
		n.ID = nf.ID
	}
	n.Position = nf.Position
	if nf.Rotation != nil {
		n.Rotation = nf.Rotation.Normalize()
	}
	if nf.Scale != nil {
		n.Scale = *nf.Scale
	}

	for _, p := range nf.Colliders {
		c, err := collider.FromProperties(p, s.opts.colliderOptions())
		if err != nil {
			return fmt.Errorf("node %q: %w", nf.Name, err)
		}
		s.attach(n, c)
	}
	return nil
}

// Snapshot returns the file form of the scene. Collider fields equal to a
// default collider of the same kind are omitted.
func (s *Scene) Snapshot() File {
	f := File{Name: s.Name}
	defaults := make(map[collider.Kind]collider.Shape)

	s.Walk(func(n *Node) bool {
		nf := NodeFile{ID: n.ID, Name: n.Name, Position: n.Position}
		if n.parent != nil {
			nf.Parent = n.parent.Name
		}
		if n.Rotation != math.QuatIdentity() {
			rot := n.Rotation
			nf.Rotation = &rot
		}
		if n.Scale != math.Splat(1) {
			scale := n.Scale
			nf.Scale = &scale
		}
		for _, c := range n.colliders {
			ref, ok := defaults[c.Kind()]
			if !ok {
				// Kinds come from existing colliders, New cannot fail here
				ref, _ = collider.New(c.Kind(), collider.Options{})
				defaults[c.Kind()] = ref
			}
			nf.Colliders = append(nf.Colliders, c.Properties(ref))
		}
		f.Nodes = append(f.Nodes, nf)
		return true
	})
	return f
}

// Load reads a scene file. The scene name defaults to the file name.
func Load(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s, err := Build(f, opts)
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", path, err)
	}

	shapes, _ := s.Colliders()
	logger.Info("scene loaded",
		zap.String("path", path),
		zap.String("name", s.Name),
		zap.Int("nodes", s.Len()),
		zap.Int("colliders", len(shapes)))
	return s, nil
}

// Save writes the scene to path, creating parent directories.
func (s *Scene) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating scene dir: %w", err)
	}

	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadAll loads several scene files concurrently. Results keep the order of
// paths. The backend in opts must be safe for concurrent use. On error every
// scene already loaded is released.
func LoadAll(ctx context.Context, paths []string, opts Options) ([]*Scene, error) {
	scenes := make([]*Scene, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Load(path, opts)
			if err != nil {
				return err
			}
			scenes[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, s := range scenes {
			if s != nil {
				s.Release()
			}
		}
		return nil, err
	}
	return scenes, nil
}
