package email

// SendWelcomeEmail sends the greeting a newly registered mentee receives.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to Mentorship!",
		TemplateWelcome,
		data,
	)
}

// SendMentorAssignedEmail tells a mentee who their mentor is.
func (c *Client) SendMentorAssignedEmail(to, menteeFirstName, mentorName, mentorEmail string) error {
	data := map[string]string{
		"MenteeFirstName": menteeFirstName,
		"MentorName":      mentorName,
		"MentorEmail":     mentorEmail,
	}

	return c.SendEmail(
		to,
		"You have been assigned a mentor",
		TemplateMentorAssigned,
		data,
	)
}
