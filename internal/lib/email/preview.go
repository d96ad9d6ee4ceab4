package email

// PreviewData contains sample template data for local preview/testing.
//
// It maps:
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Ada",
	},
	TemplateMentorAssigned: {
		"MenteeFirstName": "Ada",
		"MentorName":      "Grace Hopper",
		"MentorEmail":     "grace@example.com",
	},
}
