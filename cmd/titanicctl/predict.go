package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/titanic/internal/app"
	"github.com/okian/titanic/internal/domain/scoring"
)

var predictInput scoring.Input

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score a passenger with the heuristic rule set",
	Long: `Scores a hypothetical passenger locally, without a running predictor,
and prints the same JSON the predict endpoint returns.`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.IntVar(&predictInput.Pclass, "pclass", 3, "ticket class: 1, 2 or 3")
	f.StringVar(&predictInput.Sex, "sex", "male", "male or female")
	f.Float64Var(&predictInput.Age, "age", 30, "age in years")
	f.Float64Var(&predictInput.SibSp, "sibsp", 0, "siblings and spouses aboard")
	f.Float64Var(&predictInput.Parch, "parch", 0, "parents and children aboard")
	f.Float64Var(&predictInput.Fare, "fare", 15, "ticket fare")
	f.StringVar(&predictInput.Embarked, "embarked", "S", "port of embarkation: C, Q or S")
	f.StringVar(&predictInput.Name, "name", "", `passenger name, "Surname, Title. Given"`)
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	svc := service.NewPredictorService()
	p, err := svc.Predict(cmd.Context(), predictInput)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
