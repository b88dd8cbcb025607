package email

// PreviewData feeds each template with sample values for local previews.
var PreviewData = map[Template]map[string]string{
	TemplateTaskCreated: {
		"TaskID":          "6f1c2f5e-2a8b-4d5e-9c1a-3b2d4e5f6a7b",
		"TaskTitle":       "Buy groceries",
		"TaskDescription": "Milk, bread and eggs",
	},
}
