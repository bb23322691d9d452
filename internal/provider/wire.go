package provider

// Сырые формы ответов вендоров. Адаптер декодирует их только для проверки
// целостности и ошибок уровня API; в каноническую форму переводит пакет normalize.

// DigiKeySearchResponse — ответ products/v4/search/keyword.
type DigiKeySearchResponse struct {
	Products      []DigiKeyProduct `json:"Products"`
	ProductsCount int              `json:"ProductsCount"`
	SearchLocale  struct {
		Currency string `json:"Currency"`
	} `json:"SearchLocaleUsed"`
}

type DigiKeyProduct struct {
	ManufacturerProductNumber string `json:"ManufacturerProductNumber"`
	Manufacturer              struct {
		Name string `json:"Name"`
	} `json:"Manufacturer"`
	Description struct {
		ProductDescription  string `json:"ProductDescription"`
		DetailedDescription string `json:"DetailedDescription"`
	} `json:"Description"`
	DatasheetURL      string                    `json:"DatasheetUrl"`
	ProductURL        string                    `json:"ProductUrl"`
	PhotoURL          string                    `json:"PhotoUrl"`
	QuantityAvailable int64                     `json:"QuantityAvailable"`
	UnitPrice         float64                   `json:"UnitPrice"`
	Variations        []DigiKeyProductVariation `json:"ProductVariations"`
}

type DigiKeyProductVariation struct {
	DigiKeyProductNumber string `json:"DigiKeyProductNumber"`
	PackageType          struct {
		Name string `json:"Name"`
	} `json:"PackageType"`
	StandardPricing   []DigiKeyPriceBreak `json:"StandardPricing"`
	QuantityAvailable int64               `json:"QuantityAvailableforPackageType"`
}

type DigiKeyPriceBreak struct {
	BreakQuantity int64   `json:"BreakQuantity"`
	UnitPrice     float64 `json:"UnitPrice"`
}

// digiKeyErrorResponse — тело ошибки DigiKey API.
type digiKeyErrorResponse struct {
	StatusCode   int    `json:"StatusCode"`
	ErrorMessage string `json:"ErrorMessage"`
	ErrorDetails string `json:"ErrorDetails"`
}

// MouserSearchResponse — ответ api/v1/search/*.
type MouserSearchResponse struct {
	Errors        []MouserError `json:"Errors"`
	SearchResults *struct {
		NumberOfResult int          `json:"NumberOfResult"`
		Parts          []MouserPart `json:"Parts"`
	} `json:"SearchResults"`
}

type MouserError struct {
	ID                    int    `json:"Id"`
	Code                  string `json:"Code"`
	Message               string `json:"Message"`
	PropertyName          string `json:"PropertyName"`
	ResourceKey           string `json:"ResourceKey"`
	ResourceFormatString  string `json:"ResourceFormatString"`
	ResourceFormatString2 string `json:"ResourceFormatString2"`
}

type MouserPart struct {
	ManufacturerPartNumber string             `json:"ManufacturerPartNumber"`
	MouserPartNumber       string             `json:"MouserPartNumber"`
	Manufacturer           string             `json:"Manufacturer"`
	Description            string             `json:"Description"`
	DataSheetURL           string             `json:"DataSheetUrl"`
	ProductDetailURL       string             `json:"ProductDetailUrl"`
	ImagePath              string             `json:"ImagePath"`
	Availability           string             `json:"Availability"`
	AvailabilityInStock    string             `json:"AvailabilityInStock"`
	PriceBreaks            []MouserPriceBreak `json:"PriceBreaks"`
	ProductAttributes      []struct {
		AttributeName  string `json:"AttributeName"`
		AttributeValue string `json:"AttributeValue"`
	} `json:"ProductAttributes"`
}

type MouserPriceBreak struct {
	Quantity int64  `json:"Quantity"`
	Price    string `json:"Price"`
	Currency string `json:"Currency"`
}

// ArrowSearchResponse — ответ itemservice/v4/en/search/token.
type ArrowSearchResponse struct {
	ItemServiceResult struct {
		TransactionArea []struct {
			Response struct {
				ReturnCode string `json:"returnCode"`
				ReturnMsg  string `json:"returnMsg"`
				Success    bool   `json:"success"`
			} `json:"response"`
		} `json:"transactionArea"`
		Data []struct {
			PartList []ArrowPart `json:"PartList"`
		} `json:"data"`
	} `json:"itemserviceresult"`
}

type ArrowPart struct {
	PartNum      string `json:"partNum"`
	Manufacturer struct {
		MfrName string `json:"mfrName"`
	} `json:"manufacturer"`
	Desc      string `json:"desc"`
	Package   string `json:"packageType"`
	Resources []struct {
		Type string `json:"type"`
		URI  string `json:"uri"`
	} `json:"resources"`
	InvOrg struct {
		WebSites []struct {
			Code    string `json:"code"`
			Sources []struct {
				Currency    string            `json:"currency"`
				SourceParts []ArrowSourcePart `json:"sourceParts"`
			} `json:"sources"`
		} `json:"webSites"`
	} `json:"InvOrg"`
}

type ArrowSourcePart struct {
	Availability []struct {
		FohQty int64 `json:"fohQty"`
	} `json:"Availability"`
	Prices struct {
		ResaleList []struct {
			Price  float64 `json:"price"`
			MinQty int64   `json:"minQty"`
		} `json:"resaleList"`
	} `json:"Prices"`
}
