package email

// SendTaskCreatedEmail confirms a stored task to the address it was
// submitted with.
func (c *Client) SendTaskCreatedEmail(to, taskID, title, description string) error {
	data := map[string]string{
		"TaskID":          taskID,
		"TaskTitle":       title,
		"TaskDescription": description,
	}

	return c.SendEmail(
		to,
		"Your task has been saved: "+title,
		TemplateTaskCreated,
		data,
	)
}
