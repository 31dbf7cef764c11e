package telemetry

// DashboardServices returns the eight services of the dashboard tile, all healthy.
func DashboardServices() []ServiceEntity {
	return []ServiceEntity{
		{ID: "1", Name: "Auth", Icon: "⛨", Status: ServiceHealthy},
		{ID: "2", Name: "API", Icon: "◍", Status: ServiceHealthy},
		{ID: "3", Name: "Data", Icon: "⛁", Status: ServiceHealthy},
		{ID: "4", Name: "Cache", Icon: "≡", Status: ServiceHealthy},
		{ID: "5", Name: "Mail", Icon: "✉", Status: ServiceHealthy},
		{ID: "6", Name: "Logs", Icon: "◷", Status: ServiceHealthy},
		{ID: "7", Name: "Edge", Icon: "◠", Status: ServiceHealthy},
		{ID: "8", Name: "AI", Icon: "ϟ", Status: ServiceHealthy},
	}
}

// GridServices returns the twelve services of the microservices grid tile.
func GridServices() []ServiceEntity {
	return []ServiceEntity{
		{ID: "1", Name: "Auth-Srv", Icon: "⛨", Status: ServiceHealthy},
		{ID: "2", Name: "API-Gtw", Icon: "◍", Status: ServiceHealthy},
		{ID: "3", Name: "Pay-Gtw", Icon: "∿", Status: ServiceWarning},
		{ID: "4", Name: "Log-Srv", Icon: "≡", Status: ServiceHealthy},
		{ID: "5", Name: "Search", Icon: "▤", Status: ServiceHealthy},
		{ID: "6", Name: "Img-Proc", Icon: "⚠", Status: ServiceCritical},
		{ID: "7", Name: "Email", Icon: "✉", Status: ServiceHealthy},
		{ID: "8", Name: "Queue", Icon: "◷", Status: ServiceHealthy},
		{ID: "9", Name: "Legacy", Icon: "⛁", Status: ServiceInactive},
		{ID: "10", Name: "Metrics", Icon: "∿", Status: ServiceHealthy},
		{ID: "11", Name: "KV-Store", Icon: "⛁", Status: ServiceHealthy},
		{ID: "12", Name: "Crawler", Icon: "◍", Status: ServiceHealthy},
	}
}

// PresetServices returns the default services for a variant.
func PresetServices(v Variant) []ServiceEntity {
	if v == VariantGrid {
		return GridServices()
	}
	return DashboardServices()
}

// PresetServicePolicy returns the default mutation policy for a variant.
func PresetServicePolicy(v Variant) ServicePolicy {
	if v == VariantGrid {
		return GridServicePolicy()
	}
	return DashboardServicePolicy()
}
