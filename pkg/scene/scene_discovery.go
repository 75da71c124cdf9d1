package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Description: "Fuzzy metal ground with diffuse, glass and gold spheres",
		},
		factory: func() *Scene { return NewDefaultScene() },
	},
	{
		info: SceneInfo{
			ID:          "hollow-glass",
			Description: "Default layout with a hollow glass bubble",
		},
		factory: func() *Scene { return NewHollowGlassScene() },
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			Description: "Random field of small spheres around three large ones",
		},
		factory: func() *Scene { return NewSphereGridScene() },
	},
}

// ListScenes returns metadata for all built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.DisplayName = titleCase(info.ID)
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of all built-in scenes
func Names() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, info := range scenes {
		names[i] = info.ID
	}
	return names
}

// Lookup builds the built-in scene with the given ID
func Lookup(id string) (*Scene, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, b := range builtinScenes {
		if b.info.ID == key {
			return b.factory(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(Names(), ", "))
}

// titleCase converts a hyphenated or underscored string to title case
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
