package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gastos/internal/adapter/client"
	"gastos/internal/domain"
	"gastos/internal/money"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("API_BASE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001"
	}

	rootCmd := &cobra.Command{
		Use:   "gastos",
		Short: "Expense recording CLI",
		Long:  `A command line interface for recording installment expenses against the gastos API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", defaultURL, "Base URL of the gastos API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newListCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newAddCommand() *cobra.Command {
	var (
		name         string
		amountText   string
		installments int
		category     string
		paymentType  string
		dateText     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense, optionally split into monthly installments",
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := money.Parse(amountText)
			if err != nil {
				fmt.Printf("Invalid amount %q: %v\n", amountText, err)
				os.Exit(1)
			}

			startDate := time.Now().UTC().Truncate(24 * time.Hour)
			if dateText != "" {
				startDate, err = time.ParseInLocation("2006-01-02", dateText, time.UTC)
				if err != nil {
					fmt.Printf("Invalid date %q: expected YYYY-MM-DD\n", dateText)
					os.Exit(1)
				}
			}

			plan := domain.InstallmentPlan{
				Name:         name,
				Amount:       amount,
				Installments: installments,
				Category:     category,
				PaymentType:  domain.PaymentType(paymentType),
				StartDate:    startDate,
			}

			submitPlan(plan)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Expense name")
	cmd.Flags().StringVar(&amountText, "amount", "", "Amount (e.g. 120.00 or R$ 1.234,56); repeated on every installment")
	cmd.Flags().IntVar(&installments, "installments", 1, "Number of monthly installments")
	cmd.Flags().StringVar(&category, "category", "Other", "Expense category")
	cmd.Flags().StringVar(&paymentType, "type", string(domain.PaymentDebit), "Payment type: Credit, Debit or PIX")
	cmd.Flags().StringVar(&dateText, "date", "", "First installment date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func submitPlan(plan domain.InstallmentPlan) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout*time.Duration(max(plan.Installments, 1)))
	defer cancel()

	api := client.New(baseURL, timeout)

	created, err := api.SubmitPlan(ctx, plan)
	if err != nil {
		var planErr *client.PlanError
		if errors.As(err, &planErr) {
			fmt.Printf("FAILED: %v\n", planErr)
			fmt.Printf("Persisted installments: %d of %d (no rollback performed)\n",
				len(planErr.Created), planErr.Total)
		} else {
			fmt.Printf("FAILED: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Saved %d installment(s):\n", len(created))
	printExpenses(created)
}

func newListCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			api := client.New(baseURL, timeout)

			expenses, err := api.ListExpenses(ctx, month)
			if err != nil {
				fmt.Printf("FAILED: %v\n", err)
				os.Exit(1)
			}

			if len(expenses) == 0 {
				fmt.Println("No expenses recorded.")
				return
			}

			printExpenses(expenses)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Restrict to one month (YYYY-MM)")

	return cmd
}

func printExpenses(expenses []*domain.Expense) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tAMOUNT\tINSTALLMENT\tCATEGORY\tTYPE")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
			e.ID,
			e.Date.Format("2006-01-02"),
			e.Name,
			money.Format(e.Amount),
			e.Installment,
			e.InstallmentTotal,
			e.Category,
			e.PaymentType,
		)
	}
	w.Flush()
}
