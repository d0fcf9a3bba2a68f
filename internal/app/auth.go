package app

import (
	"context"
	"fmt"
	"os"
)

// Login runs the two-step email-code flow: ask for an address, request a
// code, then exchange the emailed code for a session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email address", os.Stdout)
	if err != nil || email == "" {
		return err
	}

	if err := a.authService.RequestCode(ctx, email); err != nil {
		fmt.Println(a.tr.T("error.server"))
		return err
	}
	fmt.Println(a.tr.T("auth.code_sent", email))

	code, err := GetSimpleText(a.reader, "6-digit code", os.Stdout)
	if err != nil || code == "" {
		return err
	}

	sess, err := a.authService.VerifyCode(ctx, email, code)
	if err != nil {
		fmt.Println(a.tr.T("auth.invalid_code"))
		return err
	}

	a.userEmail = sess.Email
	fmt.Println(a.tr.T("auth.signed_in", sess.Email))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.SignOut(ctx); err != nil {
		return err
	}
	a.userEmail = ""
	fmt.Println(a.tr.T("auth.signed_out"))
	return nil
}
