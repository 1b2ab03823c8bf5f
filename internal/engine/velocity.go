package engine

import "github.com/merchops/pricedesk/internal/domain"

// unassignedManager marks a platform rule that does not claim a manager.
const unassignedManager = "Unassigned"

// ResolveManager returns the effective manager for a channel. The
// pricing-rules configuration is authoritative: when it declares a real
// manager for the channel's platform, that value wins over whatever is
// stored on the channel record. Stale channel data is overridden at read
// time, never written back.
func ResolveManager(rules domain.PricingRules, ch domain.Channel) string {
	if rule, ok := rules[ch.Platform]; ok {
		if rule.Manager != "" && rule.Manager != unassignedManager {
			return rule.Manager
		}
	}
	return ch.Manager
}

// channelMatches reports whether a channel falls inside the filter scope.
func channelMatches(rules domain.PricingRules, scope domain.FilterScope, ch domain.Channel) bool {
	if !scope.HasPlatform(ch.Platform) {
		return false
	}
	if scope.Manager == "" || scope.Manager == domain.ManagerAll {
		return true
	}
	return ResolveManager(rules, ch) == scope.Manager
}

// Aggregate computes the effective daily velocity and weighted average
// price for a product under a filter scope.
//
// With no active scope the product's own precomputed aggregates are
// trusted: the full-catalog view never recomputes from channels. With an
// active scope, velocity is the sum over matching channels and price is
// the velocity-weighted average of channel prices (a channel without an
// explicit price contributes the product's current price). Zero total
// velocity degrades to a simple mean; zero matching channels excludes the
// product from the filtered view.
func Aggregate(p domain.Product, rules domain.PricingRules, scope domain.FilterScope) domain.EffectiveRate {
	if !scope.Active() {
		return domain.EffectiveRate{
			Velocity: p.AvgDailySales,
			Price:    p.CurrentPrice,
			Visible:  true,
		}
	}

	var (
		totalVelocity float64
		weightedSum   float64
		priceSum      float64
		matched       int
	)
	for _, ch := range p.Channels {
		if !channelMatches(rules, scope, ch) {
			continue
		}
		price := ch.Price
		if price == 0 {
			price = p.CurrentPrice
		}
		totalVelocity += ch.Velocity
		weightedSum += price * ch.Velocity
		priceSum += price
		matched++
	}

	if matched == 0 {
		return domain.EffectiveRate{}
	}

	price := priceSum / float64(matched)
	if totalVelocity > 0 {
		price = weightedSum / totalVelocity
	}

	return domain.EffectiveRate{
		Velocity: totalVelocity,
		Price:    price,
		Visible:  true,
	}
}
