package structure

// Category buckets a tree-node kind by how much attention it deserves when
// reading student code.
type Category string

const (
	// CategoryUnusual covers constructs rarely taught in the course;
	// their presence usually means copied or generated code.
	CategoryUnusual Category = "unusual"
	// CategoryImportant covers ordinary control flow worth reading.
	CategoryImportant Category = "important"
	// CategoryMundane covers plumbing that adds bulk but little risk.
	CategoryMundane Category = "mundane"
	// CategoryDrafter covers framework-specific constructs.
	CategoryDrafter Category = "drafter"
)

// categoryOrder lists categories with their weights in descending order of
// severity. The weighted sum is reported at 1/1000 scale.
var categoryOrder = []struct {
	Category Category
	Weight   int
}{
	{CategoryUnusual, 1000},
	{CategoryImportant, 100},
	{CategoryMundane, 10},
	{CategoryDrafter, 1},
}

// nodeCategories maps tree-sitter node kinds to categories. Kinds absent
// from the table score nothing.
var nodeCategories = map[string]Category{
	"lambda":                   CategoryUnusual,
	"yield":                    CategoryUnusual,
	"await":                    CategoryUnusual,
	"global_statement":         CategoryUnusual,
	"nonlocal_statement":       CategoryUnusual,
	"try_statement":            CategoryUnusual,
	"raise_statement":          CategoryUnusual,
	"with_statement":           CategoryUnusual,
	"while_statement":          CategoryUnusual,
	"match_statement":          CategoryUnusual,
	"list_comprehension":       CategoryUnusual,
	"set_comprehension":        CategoryUnusual,
	"dictionary_comprehension": CategoryUnusual,
	"generator_expression":     CategoryUnusual,
	"conditional_expression":   CategoryUnusual,

	"if_statement":        CategoryImportant,
	"elif_clause":         CategoryImportant,
	"else_clause":         CategoryImportant,
	"for_statement":       CategoryImportant,
	"function_definition": CategoryImportant,
	"class_definition":    CategoryImportant,
	"return_statement":    CategoryImportant,
	"boolean_operator":    CategoryImportant,
	"comparison_operator": CategoryImportant,
	"not_operator":        CategoryImportant,

	"assignment":           CategoryMundane,
	"augmented_assignment": CategoryMundane,
	"call":                 CategoryMundane,
	"binary_operator":      CategoryMundane,
	"unary_operator":       CategoryMundane,
	"subscript":            CategoryMundane,
	"attribute":            CategoryMundane,
	"slice":                CategoryMundane,
	"pair":                 CategoryMundane,
}

// nameCategories routes identifiers for framework constructs into the
// drafter bucket when they appear anywhere in a function body.
var nameCategories = buildNameCategories()

func buildNameCategories() map[string]Category {
	names := map[string]Category{
		"route":                  CategoryDrafter,
		"start_server":           CategoryDrafter,
		"Page":                   CategoryDrafter,
		"get_server":             CategoryDrafter,
		"hide_debug_information": CategoryDrafter,
	}
	for _, component := range drafterComponents {
		names[component] = CategoryDrafter
	}
	return names
}

// drafterComponents mirrors the component constructors the site analyzer
// recognizes.
var drafterComponents = []string{
	"Argument", "Box", "BulletedList", "Button", "CheckBox", "Div",
	"Division", "Download", "FileUpload", "Header", "HorizontalRule",
	"Image", "LineBreak", "Link", "MatPlotLibPlot", "NumberedList",
	"PageContent", "Pre", "PreformattedText", "Row", "SelectBox", "Span",
	"SubmitButton", "Table", "Text", "TextArea", "TextBox",
}
