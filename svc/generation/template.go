package generation

// Template identifies the kind of copy to produce.
type Template string

const (
	TemplateInstagram Template = "instagram"
	TemplateFacebook  Template = "facebook"
	TemplateEcommerce Template = "ecommerce"
	TemplateEmail     Template = "email"
	TemplateGoogle    Template = "google"
	TemplateBlog      Template = "blog"
)

var templates = []Template{
	TemplateInstagram,
	TemplateFacebook,
	TemplateEcommerce,
	TemplateEmail,
	TemplateGoogle,
	TemplateBlog,
}

// Templates returns the supported templates in their canonical order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

func (t Template) String() string {
	return string(t)
}
