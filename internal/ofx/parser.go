// Package ofx parses OFX/QFX bank exports into ledger transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/mazerunner70/housef3/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns transactions. Amounts keep
// their sign: debits are negative, credits positive — the matcher relies
// on the sign to tell the two legs of a transfer apart.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			accountID := string(stmt.BankAcctFrom.AcctID)
			currency := stmt.CurDef.String()
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList, accountID, currency)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			accountID := string(stmt.CCAcctFrom.AcctID)
			currency := stmt.CurDef.String()
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList, accountID, currency)...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) statementTransactions(list *ofxgo.TransactionList, accountID, currency string) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		transactions = append(transactions, p.convertTransaction(ofxTx, accountID, currency))
	}
	return transactions
}

// convertTransaction converts an OFX transaction to our model, normalizing
// the identifier to one canonical field before it reaches the core.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID, currency string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	if currency == "" {
		currency = "USD"
	}

	tx := model.Transaction{
		ID:           canonicalID(ofxTx, accountID, amount),
		Date:         ofxTx.DtPosted.Time,
		Name:         string(ofxTx.Name),
		MerchantName: extractMerchantName(ofxTx),
		Amount:       amount,
		Currency:     currency,
		AccountID:    accountID,
	}

	tx.Hash = tx.GenerateHash()
	return tx
}

// canonicalID picks one stable identifier per transaction. Most banks set
// FITID; some legacy exports leave it blank and only carry a reference
// number, so fall back to that, scoped by account to keep it unique.
func canonicalID(ofxTx ofxgo.Transaction, accountID string, amount float64) string {
	if id := strings.TrimSpace(string(ofxTx.FiTID)); id != "" {
		return id
	}
	if ref := strings.TrimSpace(string(ofxTx.RefNum)); ref != "" {
		return accountID + ":" + ref
	}
	// Last resort: synthesize from posting data.
	return fmt.Sprintf("%s:%s:%.2f", accountID, ofxTx.DtPosted.Time.Format("20060102"), amount)
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"ONLINE TRANSFER ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(name)
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "TRANSFER":
		return true
	}
	return false
}
