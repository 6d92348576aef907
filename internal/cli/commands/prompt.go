package commands

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
)

// promptNewTask asks for the fields of a task interactively.
func promptNewTask(in *models.CreateTaskInput) error {
	questions := []*survey.Question{
		{
			Name:     "title",
			Prompt:   &survey.Input{Message: "Title:", Default: in.Title},
			Validate: validateTitle,
		},
		{
			Name:   "description",
			Prompt: &survey.Multiline{Message: "Description (markdown):", Default: in.Description},
		},
		{
			Name: "priority",
			Prompt: &survey.Select{
				Message: "Priority:",
				Options: []string{"low", "medium", "high", "critical"},
				Default: valueOr(&in.Priority, "medium"),
			},
		},
		{
			Name:     "due",
			Prompt:   &survey.Input{Message: "Due date (YYYY-MM-DD, empty for none):", Default: in.DueDate},
			Validate: validateDueDate,
		},
	}
	answers := struct {
		Title       string `survey:"title"`
		Description string `survey:"description"`
		Priority    string `survey:"priority"`
		Due         string `survey:"due"`
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}
	in.Title = answers.Title
	in.Description = answers.Description
	in.Priority = answers.Priority
	in.DueDate = answers.Due
	return nil
}

func validateTitle(ans any) error {
	s, _ := ans.(string)
	_, err := task.NewTitle(s)
	return err
}

func validateDueDate(ans any) error {
	s, _ := ans.(string)
	if s == "" {
		return nil
	}
	_, err := task.ParseDueDate(s)
	return err
}

func askForConfirmation(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

func promptPassword(message string) (string, error) {
	var password string
	if err := survey.AskOne(&survey.Password{Message: message}, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
