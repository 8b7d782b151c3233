package site

// componentNames is the fixed set of Drafter UI component constructors
// recognized by the analyzer. Calls to anything else are treated as plain
// function calls.
var componentNames = []string{
	"Argument",
	"Box",
	"BulletedList",
	"Button",
	"CheckBox",
	"Div",
	"Division",
	"Download",
	"FileUpload",
	"Header",
	"HorizontalRule",
	"Image",
	"LineBreak",
	"Link",
	"MatPlotLibPlot",
	"NumberedList",
	"PageContent",
	"Pre",
	"PreformattedText",
	"Row",
	"SelectBox",
	"Span",
	"SubmitButton",
	"Table",
	"Text",
	"TextArea",
	"TextBox",
}

// linkingComponentNames are the navigation components whose second positional
// argument names another route.
var linkingComponentNames = []string{"Link", "Button", "SubmitButton"}

var (
	componentSet = makeSet(componentNames)
	linkingSet   = makeSet(linkingComponentNames)
)

// IsComponent reports whether name is a known Drafter component constructor.
func IsComponent(name string) bool {
	return componentSet[name]
}

// IsLinkingComponent reports whether name is a navigation component.
func IsLinkingComponent(name string) bool {
	return linkingSet[name]
}

// Components returns the recognized component names.
func Components() []string {
	out := make([]string, len(componentNames))
	copy(out, componentNames)
	return out
}

func makeSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}
