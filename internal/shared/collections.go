package shared

import "terminal_plus/internal/domain"

// Collections is the static curated catalog. IDs are stable and
// referenced by clients; member slugs follow the canonical
// "<name>-<terminal>" scheme, except brand slugs which are brand IDs.
var Collections = []domain.Collection{
	{
		ID:       "hawker-heaven",
		Name:     "Hawker Heaven",
		Icon:     "🍜",
		Gradient: "from-orange-400 to-red-500",
		MemberSlugs: []string{
			"killiney-kopitiam-sint3",
			"ya-kun-kaya-toast-sint2",
			"heavenly-wang-sint1",
			"hill-street-coffee-shop-sint4",
			"the-kitchen-by-wolfgang-puck-sint3",
			"tip-top-curry-puff-sint1",
		},
		Universal: true,
	},
	{
		ID:       "quick-refuel",
		Name:     "Quick Refuel",
		Icon:     "⚡",
		Gradient: "from-yellow-400 to-orange-500",
		MemberSlugs: []string{
			"ya-kun-kaya-toast-sint2",
			"starbucks-sin",
			"mcdonalds-sint2",
			"subway-sint3",
		},
		Universal: true,
	},
	{
		ID:       "rest-and-recharge",
		Name:     "Rest & Recharge",
		Icon:     "😴",
		Gradient: "from-indigo-400 to-purple-500",
		MemberSlugs: []string{
			"snooze-lounge-sint3",
			"sanctuary-by-plaza-premium-sint1",
			"ambassador-transit-lounge-sint2",
			"oasis-lounge-sint1",
		},
		Universal: true,
	},
	{
		ID:       "retail-therapy",
		Name:     "Retail Therapy",
		Icon:     "🛍️",
		Gradient: "from-pink-400 to-rose-500",
		MemberSlugs: []string{
			"whsmith-sin",
			"gucci-boutique-sint1",
			"shilla-duty-free-sint2",
			"lotte-duty-free-sint3",
		},
		Universal: true,
	},
	{
		ID:       "changi-wonders",
		Name:     "Changi Wonders",
		Icon:     "🌿",
		Gradient: "from-emerald-400 to-teal-500",
		MemberSlugs: []string{
			"butterfly-garden-sint3",
			"sunflower-garden-sint2",
			"the-slide-sint3",
			"kinetic-rain-sint1",
		},
		Airports: []string{"SIN"},
	},
}
