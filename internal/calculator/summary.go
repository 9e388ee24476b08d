package calculator

import (
	"fmt"
	"strconv"
	"strings"
)

// SummaryFilename is the fixed name offered for the downloadable summary.
const SummaryFilename = "rachaconta-resumo.txt"

// Summary renders the plain-text export of a computed bill: amount, tip,
// total, and the per-person breakdown. Currency values are formatted with
// exactly two fraction digits; internal precision is untouched.
func Summary(in Input, res Result) string {
	var b strings.Builder
	b.WriteString("RachaConta - Resumo da Conta\n\n")
	fmt.Fprintf(&b, "Valor da Conta: R$ %.2f\n", res.BillAmount)
	fmt.Fprintf(&b, "Gorjeta (%s%%): R$ %.2f\n", formatPercent(in.TipPercentage), res.TipAmount)
	fmt.Fprintf(&b, "Total: R$ %.2f\n", res.TotalBill)

	switch {
	case len(res.Individual) > 0:
		b.WriteString("\nDivisão personalizada:\n")
		for i, share := range res.Individual {
			pct := ParseAmount(in.People[i].Percentage)
			fmt.Fprintf(&b, "  %s (%s%%): R$ %.2f\n", share.Name, formatPercent(pct), share.Amount)
		}
	case !res.SplitValid:
		fmt.Fprintf(&b, "\nDivisão personalizada indisponível: %s\n", res.SplitMessage)
	default:
		fmt.Fprintf(&b, "\nDividido por %d: R$ %.2f por pessoa\n", res.SplitCount, res.PerPersonAmount)
	}

	return b.String()
}

// formatPercent drops trailing zeros so 15 renders as "15" and 18.5 as "18.5".
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
