package notify

import (
	"log"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// OwnerLister supplies the owner ids the end-of-day run fans out over.
type OwnerLister interface {
	ListIDs() ([]int, error)
}

// StartDailySummaryLoop fires the end-of-day run at 23:59 local time and
// then every interval after that. Run in a goroutine from main.
func StartDailySummaryLoop(e *Engine, owners OwnerLister, mailer *Mailer, interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		RunDailySummaries(e, owners, mailer)
	}
}

// RunDailySummaries evaluates the daily summary and the expiry window for
// every owner. Failures on one owner never block the rest.
func RunDailySummaries(e *Engine, owners OwnerLister, mailer *Mailer) {
	ids, err := owners.ListIDs()
	if err != nil {
		log.Printf("daily summary run aborted: %v", err)
		return
	}

	var combined repo.SaleTotals
	for _, ownerID := range ids {
		e.GenerateDailySummary(ownerID)
		e.CheckExpiringProducts(ownerID)

		if mailer.Enabled() {
			totals, err := e.sales.TotalsOn(ownerID, time.Now())
			if err != nil {
				continue
			}
			combined.Count += totals.Count
			combined.Revenue += totals.Revenue
			combined.Profit += totals.Profit
		}
	}

	if mailer.Enabled() {
		mailer.SendDailySummary(combined)
	}
	log.Printf("daily summary run completed for %d owners", len(ids))
}
