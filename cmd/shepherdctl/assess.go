package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgo/shepherd/api/internal/catalog"
	"github.com/forgo/shepherd/api/internal/matching"
	"github.com/forgo/shepherd/api/internal/model"
	"github.com/forgo/shepherd/api/internal/scoring"
)

func newScoreCommand() *cobra.Command {
	var testType, file string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answers file and print the score record",
		Long:  "Score a JSON answers file (the \"answers\" object of a submit request) for one test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tt := model.TestType(testType)
			if !tt.IsValid() {
				return fmt.Errorf("unknown test type %q", testType)
			}

			var answers model.Answers
			if err := readJSONFile(file, &answers); err != nil {
				return err
			}

			record, err := scoring.Score(tt, answers)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().StringVar(&testType, "type", "", "Test type: personality, gifts, skills, passion or experience")
	cmd.Flags().StringVar(&file, "file", "", "Answers JSON file")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMatchCommand() *cobra.Command {
	var file, catalogPath, sortField, order string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank ministries for a set of score records",
		Long:  "Read a JSON array of score records and print the ranked match results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, dir, err := matching.ParseSort(sortField, order)
			if err != nil {
				return err
			}

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}

			var list []*model.ScoreRecord
			if err := readJSONFile(file, &list); err != nil {
				return err
			}
			records := make(model.UserRecords, len(list))
			for i, rec := range list {
				if rec == nil {
					continue
				}
				if err := rec.Validate(); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
				records[rec.TestType] = rec
			}

			results, err := matching.Match(records, cat.All(), matching.Options{Sort: field, Order: dir})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Score records JSON file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Ministry catalog JSON (default: embedded)")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort by compatibility, name or commitment")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
