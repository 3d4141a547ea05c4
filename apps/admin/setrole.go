package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/profile"
)

// setRole changes the role of an existing profile; the first admin has to be promoted this way.
func (cli *commandLine) setRole(userID, role string) error {
	up := profile.UpdateProfile{Role: role}
	if err := up.Validate(cli.validate); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("role: %s", core.TranslateValidationErrors(verrs, cli.translator)["role"])
		}
		return err
	}

	p, err := cli.profileSvc.Update(context.Background(), userID, up)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s is now %s\n", p.DisplayName(), p.Role)
	return nil
}
