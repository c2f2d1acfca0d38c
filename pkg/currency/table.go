package currency

// isoTable is the built-in ISO 4217 seed data: active alphabetic codes with
// their numeric codes, minor unit precision, and English names. Symbols are
// filled in for the currencies that have an unambiguous one; everything else
// formats with its code as the prefix (e.g. "NOK500.00").
var isoTable = []Currency{
	{Code: "AED", NumericCode: "784", Precision: 2, Name: "UAE Dirham"},
	{Code: "AFN", NumericCode: "971", Precision: 2, Name: "Afghani"},
	{Code: "ALL", NumericCode: "008", Precision: 2, Name: "Lek"},
	{Code: "AMD", NumericCode: "051", Precision: 2, Name: "Armenian Dram"},
	{Code: "ANG", NumericCode: "532", Precision: 2, Name: "Netherlands Antillean Guilder"},
	{Code: "AOA", NumericCode: "973", Precision: 2, Name: "Kwanza"},
	{Code: "ARS", NumericCode: "032", Precision: 2, Name: "Argentine Peso"},
	{Code: "AUD", NumericCode: "036", Precision: 2, Name: "Australian Dollar"},
	{Code: "AWG", NumericCode: "533", Precision: 2, Name: "Aruban Florin"},
	{Code: "AZN", NumericCode: "944", Precision: 2, Name: "Azerbaijan Manat"},
	{Code: "BAM", NumericCode: "977", Precision: 2, Name: "Convertible Mark"},
	{Code: "BBD", NumericCode: "052", Precision: 2, Name: "Barbados Dollar"},
	{Code: "BDT", NumericCode: "050", Precision: 2, Name: "Taka"},
	{Code: "BGN", NumericCode: "975", Precision: 2, Name: "Bulgarian Lev"},
	{Code: "BHD", NumericCode: "048", Precision: 3, Name: "Bahraini Dinar"},
	{Code: "BIF", NumericCode: "108", Precision: 0, Name: "Burundi Franc"},
	{Code: "BMD", NumericCode: "060", Precision: 2, Name: "Bermudian Dollar"},
	{Code: "BND", NumericCode: "096", Precision: 2, Name: "Brunei Dollar"},
	{Code: "BOB", NumericCode: "068", Precision: 2, Name: "Boliviano"},
	{Code: "BOV", NumericCode: "984", Precision: 2, Name: "Mvdol"},
	{Code: "BRL", NumericCode: "986", Precision: 2, Symbol: "R$", Name: "Brazilian Real"},
	{Code: "BSD", NumericCode: "044", Precision: 2, Name: "Bahamian Dollar"},
	{Code: "BTN", NumericCode: "064", Precision: 2, Name: "Ngultrum"},
	{Code: "BWP", NumericCode: "072", Precision: 2, Name: "Pula"},
	{Code: "BYN", NumericCode: "933", Precision: 2, Name: "Belarusian Ruble"},
	{Code: "BZD", NumericCode: "084", Precision: 2, Name: "Belize Dollar"},
	{Code: "CAD", NumericCode: "124", Precision: 2, Name: "Canadian Dollar"},
	{Code: "CDF", NumericCode: "976", Precision: 2, Name: "Congolese Franc"},
	{Code: "CHE", NumericCode: "947", Precision: 2, Name: "WIR Euro"},
	{Code: "CHF", NumericCode: "756", Precision: 2, Name: "Swiss Franc"},
	{Code: "CHW", NumericCode: "948", Precision: 2, Name: "WIR Franc"},
	{Code: "CLF", NumericCode: "990", Precision: 4, Name: "Unidad de Fomento"},
	{Code: "CLP", NumericCode: "152", Precision: 0, Name: "Chilean Peso"},
	{Code: "CNY", NumericCode: "156", Precision: 2, Name: "Yuan Renminbi"},
	{Code: "COP", NumericCode: "170", Precision: 2, Name: "Colombian Peso"},
	{Code: "COU", NumericCode: "970", Precision: 2, Name: "Unidad de Valor Real"},
	{Code: "CRC", NumericCode: "188", Precision: 2, Name: "Costa Rican Colon"},
	{Code: "CUP", NumericCode: "192", Precision: 2, Name: "Cuban Peso"},
	{Code: "CVE", NumericCode: "132", Precision: 2, Name: "Cabo Verde Escudo"},
	{Code: "CZK", NumericCode: "203", Precision: 2, Name: "Czech Koruna"},
	{Code: "DJF", NumericCode: "262", Precision: 0, Name: "Djibouti Franc"},
	{Code: "DKK", NumericCode: "208", Precision: 2, Name: "Danish Krone"},
	{Code: "DOP", NumericCode: "214", Precision: 2, Name: "Dominican Peso"},
	{Code: "DZD", NumericCode: "012", Precision: 2, Name: "Algerian Dinar"},
	{Code: "EGP", NumericCode: "818", Precision: 2, Name: "Egyptian Pound"},
	{Code: "ERN", NumericCode: "232", Precision: 2, Name: "Nakfa"},
	{Code: "ETB", NumericCode: "230", Precision: 2, Name: "Ethiopian Birr"},
	{Code: "EUR", NumericCode: "978", Precision: 2, Symbol: "€", Name: "Euro"},
	{Code: "FJD", NumericCode: "242", Precision: 2, Name: "Fiji Dollar"},
	{Code: "FKP", NumericCode: "238", Precision: 2, Name: "Falkland Islands Pound"},
	{Code: "GBP", NumericCode: "826", Precision: 2, Symbol: "£", Name: "Pound Sterling"},
	{Code: "GEL", NumericCode: "981", Precision: 2, Name: "Lari"},
	{Code: "GHS", NumericCode: "936", Precision: 2, Name: "Ghana Cedi"},
	{Code: "GIP", NumericCode: "292", Precision: 2, Name: "Gibraltar Pound"},
	{Code: "GMD", NumericCode: "270", Precision: 2, Name: "Dalasi"},
	{Code: "GNF", NumericCode: "324", Precision: 0, Name: "Guinean Franc"},
	{Code: "GTQ", NumericCode: "320", Precision: 2, Name: "Quetzal"},
	{Code: "GYD", NumericCode: "328", Precision: 2, Name: "Guyana Dollar"},
	{Code: "HKD", NumericCode: "344", Precision: 2, Name: "Hong Kong Dollar"},
	{Code: "HNL", NumericCode: "340", Precision: 2, Name: "Lempira"},
	{Code: "HTG", NumericCode: "332", Precision: 2, Name: "Gourde"},
	{Code: "HUF", NumericCode: "348", Precision: 2, Name: "Forint"},
	{Code: "IDR", NumericCode: "360", Precision: 2, Name: "Rupiah"},
	{Code: "ILS", NumericCode: "376", Precision: 2, Symbol: "₪", Name: "New Israeli Sheqel"},
	{Code: "INR", NumericCode: "356", Precision: 2, Symbol: "₹", Name: "Indian Rupee"},
	{Code: "IQD", NumericCode: "368", Precision: 3, Name: "Iraqi Dinar"},
	{Code: "IRR", NumericCode: "364", Precision: 2, Name: "Iranian Rial"},
	{Code: "ISK", NumericCode: "352", Precision: 0, Name: "Iceland Krona"},
	{Code: "JMD", NumericCode: "388", Precision: 2, Name: "Jamaican Dollar"},
	{Code: "JOD", NumericCode: "400", Precision: 3, Name: "Jordanian Dinar"},
	{Code: "JPY", NumericCode: "392", Precision: 0, Symbol: "¥", Name: "Yen"},
	{Code: "KES", NumericCode: "404", Precision: 2, Name: "Kenyan Shilling"},
	{Code: "KGS", NumericCode: "417", Precision: 2, Name: "Som"},
	{Code: "KHR", NumericCode: "116", Precision: 2, Name: "Riel"},
	{Code: "KMF", NumericCode: "174", Precision: 0, Name: "Comorian Franc"},
	{Code: "KPW", NumericCode: "408", Precision: 2, Name: "North Korean Won"},
	{Code: "KRW", NumericCode: "410", Precision: 0, Symbol: "₩", Name: "Won"},
	{Code: "KWD", NumericCode: "414", Precision: 3, Name: "Kuwaiti Dinar"},
	{Code: "KYD", NumericCode: "136", Precision: 2, Name: "Cayman Islands Dollar"},
	{Code: "KZT", NumericCode: "398", Precision: 2, Symbol: "₸", Name: "Tenge"},
	{Code: "LAK", NumericCode: "418", Precision: 2, Name: "Lao Kip"},
	{Code: "LBP", NumericCode: "422", Precision: 2, Name: "Lebanese Pound"},
	{Code: "LKR", NumericCode: "144", Precision: 2, Name: "Sri Lanka Rupee"},
	{Code: "LRD", NumericCode: "430", Precision: 2, Name: "Liberian Dollar"},
	{Code: "LSL", NumericCode: "426", Precision: 2, Name: "Loti"},
	{Code: "LYD", NumericCode: "434", Precision: 3, Name: "Libyan Dinar"},
	{Code: "MAD", NumericCode: "504", Precision: 2, Name: "Moroccan Dirham"},
	{Code: "MDL", NumericCode: "498", Precision: 2, Name: "Moldovan Leu"},
	{Code: "MGA", NumericCode: "969", Precision: 2, Name: "Malagasy Ariary"},
	{Code: "MKD", NumericCode: "807", Precision: 2, Name: "Denar"},
	{Code: "MMK", NumericCode: "104", Precision: 2, Name: "Kyat"},
	{Code: "MNT", NumericCode: "496", Precision: 2, Name: "Tugrik"},
	{Code: "MOP", NumericCode: "446", Precision: 2, Name: "Pataca"},
	{Code: "MRU", NumericCode: "929", Precision: 2, Name: "Ouguiya"},
	{Code: "MUR", NumericCode: "480", Precision: 2, Name: "Mauritius Rupee"},
	{Code: "MVR", NumericCode: "462", Precision: 2, Name: "Rufiyaa"},
	{Code: "MWK", NumericCode: "454", Precision: 2, Name: "Malawi Kwacha"},
	{Code: "MXN", NumericCode: "484", Precision: 2, Name: "Mexican Peso"},
	{Code: "MXV", NumericCode: "979", Precision: 2, Name: "Mexican Unidad de Inversion (UDI)"},
	{Code: "MYR", NumericCode: "458", Precision: 2, Name: "Malaysian Ringgit"},
	{Code: "MZN", NumericCode: "943", Precision: 2, Name: "Mozambique Metical"},
	{Code: "NAD", NumericCode: "516", Precision: 2, Name: "Namibia Dollar"},
	{Code: "NGN", NumericCode: "566", Precision: 2, Symbol: "₦", Name: "Naira"},
	{Code: "NIO", NumericCode: "558", Precision: 2, Name: "Cordoba Oro"},
	{Code: "NOK", NumericCode: "578", Precision: 2, Name: "Norwegian Krone"},
	{Code: "NPR", NumericCode: "524", Precision: 2, Name: "Nepalese Rupee"},
	{Code: "NZD", NumericCode: "554", Precision: 2, Name: "New Zealand Dollar"},
	{Code: "OMR", NumericCode: "512", Precision: 3, Name: "Rial Omani"},
	{Code: "PAB", NumericCode: "590", Precision: 2, Name: "Balboa"},
	{Code: "PEN", NumericCode: "604", Precision: 2, Name: "Sol"},
	{Code: "PGK", NumericCode: "598", Precision: 2, Name: "Kina"},
	{Code: "PHP", NumericCode: "608", Precision: 2, Symbol: "₱", Name: "Philippine Peso"},
	{Code: "PKR", NumericCode: "586", Precision: 2, Name: "Pakistan Rupee"},
	{Code: "PLN", NumericCode: "985", Precision: 2, Name: "Zloty"},
	{Code: "PYG", NumericCode: "600", Precision: 0, Name: "Guarani"},
	{Code: "QAR", NumericCode: "634", Precision: 2, Name: "Qatari Rial"},
	{Code: "RON", NumericCode: "946", Precision: 2, Name: "Romanian Leu"},
	{Code: "RSD", NumericCode: "941", Precision: 2, Name: "Serbian Dinar"},
	{Code: "RUB", NumericCode: "643", Precision: 2, Symbol: "₽", Name: "Russian Ruble"},
	{Code: "RWF", NumericCode: "646", Precision: 0, Name: "Rwanda Franc"},
	{Code: "SAR", NumericCode: "682", Precision: 2, Name: "Saudi Riyal"},
	{Code: "SBD", NumericCode: "090", Precision: 2, Name: "Solomon Islands Dollar"},
	{Code: "SCR", NumericCode: "690", Precision: 2, Name: "Seychelles Rupee"},
	{Code: "SDG", NumericCode: "938", Precision: 2, Name: "Sudanese Pound"},
	{Code: "SEK", NumericCode: "752", Precision: 2, Name: "Swedish Krona"},
	{Code: "SGD", NumericCode: "702", Precision: 2, Name: "Singapore Dollar"},
	{Code: "SHP", NumericCode: "654", Precision: 2, Name: "Saint Helena Pound"},
	{Code: "SLE", NumericCode: "925", Precision: 2, Name: "Leone"},
	{Code: "SOS", NumericCode: "706", Precision: 2, Name: "Somali Shilling"},
	{Code: "SRD", NumericCode: "968", Precision: 2, Name: "Surinam Dollar"},
	{Code: "SSP", NumericCode: "728", Precision: 2, Name: "South Sudanese Pound"},
	{Code: "STN", NumericCode: "930", Precision: 2, Name: "Dobra"},
	{Code: "SVC", NumericCode: "222", Precision: 2, Name: "El Salvador Colon"},
	{Code: "SYP", NumericCode: "760", Precision: 2, Name: "Syrian Pound"},
	{Code: "SZL", NumericCode: "748", Precision: 2, Name: "Lilangeni"},
	{Code: "THB", NumericCode: "764", Precision: 2, Symbol: "฿", Name: "Baht"},
	{Code: "TJS", NumericCode: "972", Precision: 2, Name: "Somoni"},
	{Code: "TMT", NumericCode: "934", Precision: 2, Name: "Turkmenistan New Manat"},
	{Code: "TND", NumericCode: "788", Precision: 3, Name: "Tunisian Dinar"},
	{Code: "TOP", NumericCode: "776", Precision: 2, Name: "Pa'anga"},
	{Code: "TRY", NumericCode: "949", Precision: 2, Symbol: "₺", Name: "Turkish Lira"},
	{Code: "TTD", NumericCode: "780", Precision: 2, Name: "Trinidad and Tobago Dollar"},
	{Code: "TWD", NumericCode: "901", Precision: 2, Name: "New Taiwan Dollar"},
	{Code: "TZS", NumericCode: "834", Precision: 2, Name: "Tanzanian Shilling"},
	{Code: "UAH", NumericCode: "980", Precision: 2, Symbol: "₴", Name: "Hryvnia"},
	{Code: "UGX", NumericCode: "800", Precision: 0, Name: "Uganda Shilling"},
	{Code: "USD", NumericCode: "840", Precision: 2, Symbol: "$", Name: "US Dollar"},
	{Code: "USN", NumericCode: "997", Precision: 2, Name: "US Dollar (Next day)"},
	{Code: "UYI", NumericCode: "940", Precision: 0, Name: "Uruguay Peso en Unidades Indexadas (UI)"},
	{Code: "UYU", NumericCode: "858", Precision: 2, Name: "Peso Uruguayo"},
	{Code: "UYW", NumericCode: "927", Precision: 4, Name: "Unidad Previsional"},
	{Code: "UZS", NumericCode: "860", Precision: 2, Name: "Uzbekistan Sum"},
	{Code: "VED", NumericCode: "926", Precision: 2, Name: "Bolivar Soberano"},
	{Code: "VES", NumericCode: "928", Precision: 2, Name: "Bolivar Soberano"},
	{Code: "VND", NumericCode: "704", Precision: 0, Symbol: "₫", Name: "Dong"},
	{Code: "VUV", NumericCode: "548", Precision: 0, Name: "Vatu"},
	{Code: "WST", NumericCode: "882", Precision: 2, Name: "Tala"},
	{Code: "XAF", NumericCode: "950", Precision: 0, Name: "CFA Franc BEAC"},
	{Code: "XAG", NumericCode: "961", Precision: 0, Name: "Silver"},
	{Code: "XAU", NumericCode: "959", Precision: 0, Name: "Gold"},
	{Code: "XBA", NumericCode: "955", Precision: 0, Name: "Bond Markets Unit European Composite Unit (EURCO)"},
	{Code: "XBB", NumericCode: "956", Precision: 0, Name: "Bond Markets Unit European Monetary Unit (E.M.U.-6)"},
	{Code: "XBC", NumericCode: "957", Precision: 0, Name: "Bond Markets Unit European Unit of Account 9 (E.U.A.-9)"},
	{Code: "XBD", NumericCode: "958", Precision: 0, Name: "Bond Markets Unit European Unit of Account 17 (E.U.A.-17)"},
	{Code: "XCD", NumericCode: "951", Precision: 2, Name: "East Caribbean Dollar"},
	{Code: "XDR", NumericCode: "960", Precision: 0, Name: "SDR (Special Drawing Right)"},
	{Code: "XOF", NumericCode: "952", Precision: 0, Name: "CFA Franc BCEAO"},
	{Code: "XPD", NumericCode: "964", Precision: 0, Name: "Palladium"},
	{Code: "XPF", NumericCode: "953", Precision: 0, Name: "CFP Franc"},
	{Code: "XPT", NumericCode: "962", Precision: 0, Name: "Platinum"},
	{Code: "XSU", NumericCode: "994", Precision: 0, Name: "Sucre"},
	{Code: "XTS", NumericCode: "963", Precision: 0, Name: "Codes specifically reserved for testing purposes"},
	{Code: "XUA", NumericCode: "965", Precision: 0, Name: "ADB Unit of Account"},
	{Code: "XXX", NumericCode: "999", Precision: 0, Name: "The codes assigned for transactions where no currency is involved"},
	{Code: "YER", NumericCode: "886", Precision: 2, Name: "Yemeni Rial"},
	{Code: "ZAR", NumericCode: "710", Precision: 2, Name: "Rand"},
	{Code: "ZMW", NumericCode: "967", Precision: 2, Name: "Zambian Kwacha"},
	{Code: "ZWG", NumericCode: "924", Precision: 2, Name: "Zimbabwe Gold"},
}
