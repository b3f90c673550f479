package order

import (
	"fmt"
	"strings"
)

var instructionTemplates = map[PaymentMethod][]string{
	PaymentCOD: {
		"Your order will be delivered to {{shipping_address}}",
		"Prepare {{amount}} in cash when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},
	PaymentBankTransfer: {
		"Transfer {{amount}} to the MediCore pharmacy account",
		"Use {{invoice_number}} as the transfer reference",
		"Orders are processed once the transfer is confirmed",
	},
	PaymentCreditCard: {
		"Your card was charged {{amount}}",
		"The statement will show reference {{invoice_number}}",
	},
}

// InstructionVars are substituted into {{name}} placeholders.
type InstructionVars map[string]string

// Instructions returns the payment steps for method with vars filled in.
// Unknown placeholders are left as they are.
func Instructions(method PaymentMethod, vars InstructionVars) []string {
	steps, ok := instructionTemplates[method]
	if !ok {
		return []string{"Follow the payment instructions sent with your order confirmation"}
	}

	result := make([]string, 0, len(steps))
	for _, step := range steps {
		for key, value := range vars {
			step = strings.ReplaceAll(step, "{{"+key+"}}", value)
		}
		result = append(result, step)
	}
	return result
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
