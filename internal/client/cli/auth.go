package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/identity"
)

// readImageFile is a test seam for loading the scan image.
var readImageFile = os.ReadFile

func (a *App) setMode(to identity.AuthMode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !identity.CanTransition(a.mode, to) {
		return false
	}
	a.mode = to
	return true
}

// Scan performs the face-scan sign-in. An unreadable or missing image file
// is a degraded scan, not a failure: the gate still signs somebody in.
func (a *App) Scan(ctx context.Context, imagePath string) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in.")
		return nil
	}

	var image []byte
	if imagePath != "" {
		data, err := readImageFile(imagePath)
		if err != nil {
			printlnFn("Camera offline. Scanning your Digital Aura instead.")
		} else {
			image = data
		}
	} else {
		printlnFn("No camera feed. Scanning your Digital Aura instead.")
	}

	printlnFn("Verifying Social Aura...")

	record, err := a.gate.FaceScanLogin(ctx, image)
	if err != nil {
		return err
	}

	if err := a.signIn(ctx, record); err != nil {
		return err
	}

	printlnFn("Aura verified. Welcome,", record.Identifier)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in.")
		return nil
	}
	a.setMode(identity.ModeLogin)

	identifier, err := GetSimpleText(a.reader, "Aura Identifier (email)", os.Stdout)
	if err != nil {
		return err
	}
	credential, err := GetPassword("Shield Key", os.Stdout)
	if err != nil {
		return err
	}

	record, err := a.gate.PasswordLogin(ctx, identifier, string(credential))
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			printlnFn("Invalid Aura Identifier or Shield Key.")
			return nil
		}
		return err
	}

	if err := a.signIn(ctx, record); err != nil {
		return err
	}

	printlnFn("Welcome back,", record.Identifier)
	return nil
}

func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in.")
		return nil
	}
	a.setMode(identity.ModeLogin)
	a.setMode(identity.ModeSignup)

	identifier, err := GetSimpleText(a.reader, "Aura Identifier (email)", os.Stdout)
	if err != nil {
		return err
	}
	credential, err := GetPassword("Shield Key", os.Stdout)
	if err != nil {
		return err
	}

	record, err := a.gate.Signup(ctx, identifier, string(credential))
	if err != nil {
		if errors.Is(err, common.ErrorIdentityAlreadyExists) {
			printlnFn("Aura already registered. Try 'login'.")
			a.setMode(identity.ModeLogin)
			return nil
		}
		return err
	}

	if err := a.signIn(ctx, record); err != nil {
		return err
	}

	printlnFn("Aura registered. Welcome,", record.Identifier)
	return nil
}

// Forgot walks the two-step reset: identifier check, then the new key twice.
func (a *App) Forgot(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in.")
		return nil
	}
	a.setMode(identity.ModeLogin)
	a.setMode(identity.ModeForgotRequest)

	identifier, err := GetSimpleText(a.reader, "Aura Identifier (email)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gate.BeginReset(ctx, identifier); err != nil {
		if errors.Is(err, common.ErrorIdentityNotFound) {
			printlnFn("Identity signature not found.")
			a.setMode(identity.ModeLogin)
			return nil
		}
		return err
	}

	a.setMode(identity.ModeForgotNewPassword)

	newCredential, err := GetPassword("New Shield Key", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm Shield Key", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gate.CompleteReset(ctx, identifier, string(newCredential), string(confirm)); err != nil {
		if errors.Is(err, common.ErrorCredentialMismatch) {
			printlnFn("Shield Keys do not match.")
			a.setMode(identity.ModeLogin)
			return nil
		}
		return err
	}

	a.setMode(identity.ModeForgotSuccess)
	printlnFn("Shield Key replaced. Try 'login'.")
	a.setMode(identity.ModeLogin)
	return nil
}

// Back returns to the previous auth screen where the flow allows it.
func (a *App) Back(_ context.Context) error {
	if a.isLoggedIn() {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.mode {
	case identity.ModeLogin:
		a.mode = identity.ModeFaceID
	case identity.ModeSignup, identity.ModeForgotRequest, identity.ModeForgotNewPassword, identity.ModeForgotSuccess:
		a.mode = identity.ModeLogin
	}
	return nil
}
