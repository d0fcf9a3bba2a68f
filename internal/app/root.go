package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Voyage (type 'help' for commands)")

	if resumed, err := a.registration.Resume(ctx); err == nil && resumed != nil {
		fmt.Println(a.tr.T("registration.resumed"))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// SetLocale switches the UI language at runtime.
func (a *App) SetLocale(name string) error {
	a.tr = a.bundle.Translator(name)
	fmt.Printf("Locale set to %s\n", a.tr.Locale())
	return nil
}
