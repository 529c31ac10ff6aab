package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vindex/vindex/internal/types"
)

const (
	SummaryFile = "rapport_analyse.txt"
	ReadmeFile  = "LISEZMOI_Description_des_fichiers.txt"
)

// ModuleSummary is one extractor's outcome as rendered in the report.
type ModuleSummary struct {
	Name   string
	Count  int
	Failed bool
}

// Summary is everything the run report needs, decoupled from the scan
// package so report stays a pure presentation layer.
type Summary struct {
	SourcePath string
	ExportDir  string
	Device     types.DeviceInfo
	Modules    []ModuleSummary
	Duration   time.Duration
}

// WriteSummary writes the human-readable run report: device identity,
// per-module counts and the list of exported files.
func WriteSummary(s Summary) error {
	f, err := os.Create(filepath.Join(s.ExportDir, SummaryFile))
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "Rapport d'analyse - %s\n", time.Now().Format("20060102 150405"))
	fmt.Fprintln(f, "========================================")
	fmt.Fprintln(f)
	fmt.Fprintf(f, "Dossier source : %s\n", s.SourcePath)
	fmt.Fprintf(f, "Dossier d'export : %s\n", s.ExportDir)
	fmt.Fprintln(f)
	fmt.Fprintln(f, "--- Informations Tablette ---")
	fmt.Fprintf(f, "Serial: %s\n", orUnknown(s.Device.Serial))
	fmt.Fprintf(f, "Model: %s\n", orUnknown(s.Device.Model))
	fmt.Fprintf(f, "Fuseau horaire: %s\n", orUnknown(s.Device.Timezone))
	fmt.Fprintf(f, "Langue: %s\n", orUnknown(s.Device.Language))
	fmt.Fprintf(f, "Date config: %s\n", orUnknown(s.Device.ConfigDate))
	fmt.Fprintf(f, "Date extraction: %s\n", s.Device.ExtractedAt)
	fmt.Fprintln(f)
	fmt.Fprintln(f, "--- Résumé des Extractions ---")
	for _, m := range s.Modules {
		if m.Failed {
			fmt.Fprintf(f, "%s: Erreur\n", m.Name)
		} else {
			fmt.Fprintf(f, "%s: %d\n", m.Name, m.Count)
		}
	}
	fmt.Fprintln(f)
	fmt.Fprintln(f, "--- Fichiers exportés ---")
	entries, err := os.ReadDir(s.ExportDir)
	if err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(f, "  - %s\n", n)
		}
	}
	return f.Close()
}

// RenderSummaryTable prints the per-module outcome table to w.
func RenderSummaryTable(w io.Writer, s Summary) {
	table := tablewriter.NewWriter(w)
	table.Header("Module", "Éléments", "Statut")
	for _, m := range s.Modules {
		status := "OK"
		count := strconv.Itoa(m.Count)
		if m.Failed {
			status = "Erreur"
			count = "-"
		}
		_ = table.Append([]string{m.Name, count, status})
	}
	_ = table.Render()
	fmt.Fprintf(w, "Durée totale: %s\n", s.Duration.Round(time.Second))
}

// WriteReadme drops the examiner-facing description of every report file.
func WriteReadme(exportDir string) error {
	return os.WriteFile(filepath.Join(exportDir, ReadmeFile), []byte(readmeText), 0o644)
}

// WriteDeviceInfo emits tablet_info.csv.
func WriteDeviceInfo(exportDir string, info types.DeviceInfo) error {
	header := []string{"serial", "model", "fuseau_horaire", "langue", "date_extraite_config", "date_extraction_script"}
	row := []string{
		orUnknown(info.Serial), orUnknown(info.Model), orUnknown(info.Timezone),
		orUnknown(info.Language), orUnknown(info.ConfigDate), info.ExtractedAt,
	}
	return WriteCSV(filepath.Join(exportDir, "tablet_info.csv"), header, [][]string{row})
}

func orUnknown(s string) string {
	if s == "" {
		return "inconnu"
	}
	return s
}

const readmeText = `Fiche Explicative des Fichiers de Rapport

Ce document décrit le contenu de chaque fichier CSV généré par l'outil
d'analyse. Chaque fichier isole un type d'information spécifique afin de
faciliter l'enquête.

---------------------------------
1. INFORMATIONS GÉNÉRALES
---------------------------------

- rapport_analyse.txt
  Résumé général de l'extraction : informations tablette, comptes de chaque
  catégorie, liste des fichiers exportés.

- tablet_info.csv
  Détails d'identification de la tablette (N/S, modèle, langue, fuseau
  horaire). Permet d'identifier formellement l'appareil source.

---------------------------------
2. DONNÉES LIÉES AUX VÉHICULES
---------------------------------

- vins_extraits.csv
  Tous les numéros d'identification de véhicule (VIN) trouvés. La colonne
  'statut_validation' indique la conformité du VIN à la norme ISO 3779.

- vehicule_refs_found.csv
  Références à des véhicules (marque, modèle, années) et à des pièces
  (OEM, FCCID) extraites des logs.

- <base>.db_<table>.csv
  Export direct des tables demandées des bases SQLite de l'appareil, par
  exemple l'historique structuré des sessions de diagnostic.

---------------------------------
3. DONNÉES DE CONNECTIVITÉ
---------------------------------

- mac_found.csv
  Toutes les adresses MAC vues par la tablette (VCI, Wi-Fi, Bluetooth). La
  colonne 'randomized' signale les adresses privées/aléatoires.

- mac_connections_found.csv
  Journal des événements de connexion et déconnexion associés aux adresses
  MAC, avec horodatage quand il est présent dans la ligne.

- endpoints_found.csv
  Toutes les URL avec lesquelles la tablette a communiqué.

---------------------------------
4. DONNÉES UTILISATEUR
---------------------------------

- userId_found.csv
  Identifiants de comptes utilisateurs trouvés dans les logs.

- pwd_sn_found.csv
  Paires numéro de série / mot de passe trouvées en clair.

---------------------------------
5. DONNÉES D'ACTIVITÉ BRUTES
---------------------------------

- log_events_found.csv
  Toutes les lignes pertinentes extraites des fichiers de log (y compris à
  l'intérieur des archives zip), classées par type d'événement.
`
