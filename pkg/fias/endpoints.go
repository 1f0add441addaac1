package fias

const (
	// DefaultPortalURL is the portal base used for token bootstrap
	DefaultPortalURL = "https://fias.nalog.ru"

	// DefaultServiceURL is the base for the SPAS public service endpoints
	DefaultServiceURL = "https://fias-public-service.nalog.ru/api/spas/v2.0"

	// TokenEndpoint is the bootstrap page the portal embeds a token in
	TokenEndpoint = "/Home/GetSpasSettings"
)

// SPAS endpoint paths, relative to the service base URL
const (
	EndpointGetRegions           = "/GetRegions"
	EndpointGetAddressItems      = "/GetAddressItems"
	EndpointGetDetails           = "/GetDetails"
	EndpointIsDescendant         = "/IsDescendant"
	EndpointHasDescendants       = "/HasDescendants"
	EndpointAddressItemByID      = "/GetAddressItemById"
	EndpointAddressItemByGUID    = "/GetAddressItemByGuid"
	EndpointAddressItemByCadnum  = "/GetAddressItemByCadastralNumber"
	EndpointGetObjectTypes       = "/GetFiasObjectTypes"
	EndpointSearchAddressItems   = "/SearchAddressItems"
	EndpointGetAddressHint       = "/GetAddressHint"
	EndpointSearchAddressItem    = "/SearchAddressItem"
	EndpointGetLocationByIP      = "/GetLocationByIp"
)
