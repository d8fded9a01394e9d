package prompts

import (
	"embed"
	"strings"

	"briefy/internal/models"
)

// embeddedTemplates holds the technical instruction templates so release
// binaries do not depend on the source tree.
//
//go:embed templates/*.txt
var embeddedTemplates embed.FS

func load(name string) string {
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".txt")
	if err != nil {
		panic("prompts: missing embedded template " + name)
	}
	return strings.TrimRight(string(data), "\n")
}

var technical = map[models.ContentType]string{
	models.ContentPR:        load("pr"),
	models.ContentFlowchart: load("flowchart"),
	models.ContentTasks:     load("tasks"),
}

var (
	videoTemplate    = load("video")
	analysisTemplate = load("analysis")
)

// Technical returns the hardcoded instructions for ct. They define the output
// contract and are never replaced by overrides. Unknown types yield "".
func Technical(ct models.ContentType) string {
	return technical[ct]
}

// Video returns the instructions sent alongside an uploaded video.
func Video() string {
	return videoTemplate
}
