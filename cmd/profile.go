package cmd

import (
	"fmt"

	"cinema-client/internal/dto/request"
	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newProfileCmd(d *deps) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := d.svc.Hub.Bootstrap(cmd.Context(), usecase.BootstrapOptions{LoadProfile: true})
			if !outcome.AllSucceeded {
				return fmt.Errorf("load profile: %s", d.svc.Hub.LastError())
			}

			profile, ok := d.svc.Hub.Profile()
			if !ok {
				return fmt.Errorf("not signed in")
			}

			fmt.Printf("%s %s <%s>\n", profile.FirstName, profile.LastName, profile.Email)
			if profile.Age != nil {
				fmt.Printf("Age: %d\n", *profile.Age)
			}
			fmt.Printf("Gender: %s\n", profile.Gender)
			return nil
		},
	}

	profileCmd.AddCommand(newProfileUpdateCmd(d))
	return profileCmd
}

func newProfileUpdateCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Edit the account details",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := d.svc.Hub.Bootstrap(cmd.Context(), usecase.BootstrapOptions{LoadProfile: true})
			if !outcome.AllSucceeded {
				return fmt.Errorf("load profile: %s", d.svc.Hub.LastError())
			}
			current, ok := d.svc.Hub.Profile()
			if !ok {
				return fmt.Errorf("not signed in")
			}

			first, err := promptDefault("First name", current.FirstName)
			if err != nil {
				return err
			}
			last, err := promptDefault("Last name", current.LastName)
			if err != nil {
				return err
			}
			email, err := promptDefault("Email", current.Email)
			if err != nil {
				return err
			}
			currentAge := 18
			if current.Age != nil {
				currentAge = *current.Age
			}
			age, err := promptDefault("Age", fmt.Sprintf("%d", currentAge))
			if err != nil {
				return err
			}
			genderPrompt := promptui.Select{Label: "Gender", Items: []string{"Male", "Female"}}
			_, gender, err := genderPrompt.Run()
			if err != nil {
				return err
			}

			ok = d.svc.Hub.UpdateProfile(cmd.Context(), &request.UpdateProfileRequest{
				FirstName: first,
				LastName:  last,
				Email:     email,
				Gender:    gender,
				Age:       utils.ParseInt(age, currentAge),
			})
			if !ok {
				return fmt.Errorf("update failed: %s", d.svc.Hub.LastError())
			}

			fmt.Println("Profile updated")
			return nil
		},
	}
}

func promptDefault(label, value string) (string, error) {
	prompt := promptui.Prompt{Label: label, Default: value}
	return prompt.Run()
}
