package vindex

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vindex/vindex/internal/refdata"
	"github.com/vindex/vindex/internal/vin"
)

func init() {
	cmd := &cobra.Command{
		Use:   "vin <VIN>",
		Short: "Check a single VIN against ISO 3779",
		Args:  cobra.ExactArgs(1),
		RunE:  runVin,
	}
	rootCmd.AddCommand(cmd)
}

func runVin(cmd *cobra.Command, args []string) error {
	candidate := strings.ToUpper(strings.TrimSpace(args[0]))
	if len(candidate) != 17 {
		return fmt.Errorf("un VIN fait 17 caractères, reçu %d", len(candidate))
	}
	fmt.Printf("VIN: %s\n", candidate)
	if refdata.ValidWMI(candidate) {
		fmt.Printf("WMI: %s (connu)\n", candidate[:3])
	} else {
		fmt.Printf("WMI: %s (inconnu)\n", candidate[:3])
	}
	expected := vin.CheckDigit(candidate)
	if expected == 0 {
		return fmt.Errorf("caractère invalide dans le VIN (I, O et Q sont interdits)")
	}
	if vin.Validate(candidate) {
		fmt.Println("Check digit: valide")
	} else {
		fmt.Printf("Check digit: invalide (attendu %c, trouvé %c)\n", expected, candidate[8])
	}
	return nil
}
