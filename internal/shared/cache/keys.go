package cache

// Chaves dos fragmentos HTML renderizados pelo embed-service
const SiteFragmentPattern = "embed:site:*"

func SiteFragmentKey(siteID string) string { return "embed:site:" + siteID }

func PickFragmentKey(pickID string) string { return "embed:pick:" + pickID }
