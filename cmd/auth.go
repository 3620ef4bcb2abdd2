package cmd

import (
	"fmt"

	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newLoginCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptText("Email")
			if err != nil {
				return err
			}
			password, err := promptSecret("Password")
			if err != nil {
				return err
			}

			outcome := d.svc.Hub.Authenticate(cmd.Context(),
				usecase.Credentials{Email: email, Password: password},
				usecase.AuthLogin,
				usecase.AuthOptions{Blocking: true, RememberMe: true},
			)
			if !outcome.AllSucceeded {
				return fmt.Errorf("login failed: %s", d.svc.Hub.LastError())
			}

			fmt.Println("Signed in")
			return nil
		},
	}
}

func newRegisterCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := promptText("First name")
			if err != nil {
				return err
			}
			last, err := promptText("Last name")
			if err != nil {
				return err
			}
			email, err := promptText("Email")
			if err != nil {
				return err
			}
			password, err := promptSecret("Password")
			if err != nil {
				return err
			}
			age, err := promptText("Age")
			if err != nil {
				return err
			}
			genderPrompt := promptui.Select{Label: "Gender", Items: []string{"Male", "Female"}}
			_, gender, err := genderPrompt.Run()
			if err != nil {
				return err
			}

			outcome := d.svc.Hub.Authenticate(cmd.Context(),
				usecase.Credentials{
					Email:     email,
					Password:  password,
					FirstName: first,
					LastName:  last,
					Gender:    gender,
					Age:       utils.ParseInt(age, 18),
				},
				usecase.AuthRegister,
				usecase.AuthOptions{Blocking: true, RememberMe: true},
			)
			if !outcome.AllSucceeded {
				return fmt.Errorf("registration failed: %s", d.svc.Hub.LastError())
			}

			fmt.Println("Account created")
			return nil
		},
	}
}

func newLogoutCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d.svc.Hub.Logout()
			fmt.Println("Signed out")
			return nil
		},
	}
}

func promptText(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}

func promptSecret(label string) (string, error) {
	prompt := promptui.Prompt{Label: label, Mask: '*'}
	return prompt.Run()
}
