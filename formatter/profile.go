package formatter

// Shell selects the document wrapper built around the article body.
type Shell int

const (
	// ShellNone submits the body alone.
	ShellNone Shell = iota
	// ShellArticle wraps the body as a standalone HTML article with a
	// title heading, dateline and footer.
	ShellArticle
	// ShellDigest prefixes an info box and appends a closing card for
	// platforms that render rich HTML.
	ShellDigest
	// ShellDocument produces a complete copy-paste document with a
	// posting checklist and reading time.
	ShellDocument
)

// Profile carries the presentation rules for one platform. Dateline and
// ImageHint are pre-rendered by the caller; Format itself never looks
// at the clock.
type Profile struct {
	Name     string
	Markdown bool
	Shell    Shell

	Dateline  string
	ImageHint string
	Tags      []string
}

// ProfileFor maps a platform name to its presentation rules. Platforms
// not listed take the body as authored, in Markdown.
func ProfileFor(platform, dateline, imageHint string, tags []string) Profile {
	switch platform {
	case "medium":
		return Profile{Name: platform, Shell: ShellArticle, Dateline: dateline, Tags: tags}
	case "blogger":
		return Profile{Name: platform, Shell: ShellDigest, Dateline: dateline, ImageHint: imageHint, Tags: tags}
	case "file":
		return Profile{Name: platform, Markdown: true, Shell: ShellDocument, Dateline: dateline, ImageHint: imageHint, Tags: tags}
	default:
		return Profile{Name: platform, Markdown: true, Shell: ShellNone, Tags: tags}
	}
}
